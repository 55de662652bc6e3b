package scopes

import (
	m "github.com/mouse-blink/pedant/internal/model"
)

// ck3Tables is the Crusader Kings 3 profile. The data mirrors the game's
// event_targets.log and effects.log dumps.
type ck3Tables struct{}

func (ck3Tables) Game() m.Game { return m.GameCK3 }

func (ck3Tables) AllKinds() Kinds { return ck3All }

const ck3All = None | Value | Bool | Flag | Character | Culture | Faith | Religion |
	Province | War | LandedTitle | Activity | Secret | Scheme | Combat | CombatSide |
	GreatHolyWar | StoryCycle | CasusBelli | Dynasty | DynastyHouse | Faction | Army |
	HolyOrder | CouncilTask | MercenaryCompany | Artifact | Inspiration | Struggle |
	Accolade | Trait

func (ck3Tables) KindFromName(name string) (Kinds, bool) {
	k, ok := ck3KindNames[name]
	return k, ok
}

var ck3KindNames = map[string]Kinds{
	"none":              None,
	"value":             Value,
	"bool":              Bool,
	"flag":              Flag,
	"character":         Character,
	"culture":           Culture,
	"faith":             Faith,
	"religion":          Religion,
	"province":          Province,
	"war":               War,
	"landed_title":      LandedTitle,
	"activity":          Activity,
	"secret":            Secret,
	"scheme":            Scheme,
	"combat":            Combat,
	"combat_side":       CombatSide,
	"ghw":               GreatHolyWar, // exception to the snake-case rule
	"story":             StoryCycle,   // another exception
	"casus_belli":       CasusBelli,
	"dynasty":           Dynasty,
	"dynasty_house":     DynastyHouse,
	"faction":           Faction,
	"army":              Army,
	"holy_order":        HolyOrder,
	"council_task":      CouncilTask,
	"mercenary_company": MercenaryCompany,
	"artifact":          Artifact,
	"inspiration":       Inspiration,
	"struggle":          Struggle,
	"accolade":          Accolade,
	"trait":             Trait,
}

func (ck3Tables) Describe(k Kinds) string { return profileDescribe(k, ck3All) }

func (ck3Tables) SimpleTransition(name string) (Transition, bool) {
	t, ok := ck3Simple[name]
	return t, ok
}

// These are the scope transitions that can be chained, like
// `root.joined_faction.faction_leader`.
var ck3Simple = map[string]Transition{
	"faction_leader":               {Faction, Character},
	"faction_target":               {Faction, Character},
	"faction_war":                  {Faction, War},
	"casus_belli":                  {War, CasusBelli},
	"activity_host":                {Activity, Character},
	"activity_location":            {Activity, Province},
	"army_commander":               {Army, Character},
	"army_owner":                   {Army, Character},
	"artifact_age":                 {Artifact, Value},
	"artifact_owner":               {Artifact, Character},
	"creator":                      {Artifact, Character},
	"previous_owner":               {Artifact, Character},
	"capital_vassal":               {LandedTitle, LandedTitle},
	"current_heir":                 {LandedTitle, Character},
	"de_facto_liege":               {LandedTitle, LandedTitle},
	"de_jure_liege":                {LandedTitle, LandedTitle},
	"holder":                       {LandedTitle, Character},
	"lessee":                       {LandedTitle, Character},
	"lessee_title":                 {LandedTitle, LandedTitle},
	"previous_holder":              {LandedTitle, Character},
	"title_capital_county":         {LandedTitle, LandedTitle},
	"title_province":               {LandedTitle, Province},
	"ghw_designated_winner":        {GreatHolyWar, Character},
	"ghw_target_character":         {GreatHolyWar, Character},
	"ghw_target_title":             {GreatHolyWar, LandedTitle},
	"ghw_war":                      {GreatHolyWar, War},
	"province_owner":               {Province, Character},
	"barony":                       {LandedTitle | Province, LandedTitle},
	"barony_controller":            {LandedTitle | Province, Character},
	"county":                       {LandedTitle | Province, LandedTitle},
	"county_controller":            {LandedTitle | Province, Character},
	"duchy":                        {LandedTitle | Province, LandedTitle},
	"empire":                       {LandedTitle | Province, LandedTitle},
	"kingdom":                      {LandedTitle | Province, LandedTitle},
	"scheme_artifact":              {Scheme, Artifact},
	"scheme_defender":              {Scheme, Character},
	"scheme_owner":                 {Scheme, Character},
	"scheme_target_character":      {Scheme, Character},
	"location":                     {Character | Combat | Army, Province},
	"councillor":                   {CouncilTask, Character},
	"holy_order_patron":            {HolyOrder, Character},
	"leader":                       {HolyOrder, Character},
	"title":                        {HolyOrder, LandedTitle},
	"claimant":                     {War | CasusBelli, Character},
	"primary_attacker":             {War | CasusBelli, Character},
	"primary_defender":             {War | CasusBelli, Character},
	"activity":                     {Character, Activity},
	"betrothed":                    {Character, Character},
	"capital_barony":               {Character, LandedTitle},
	"capital_county":               {Character, LandedTitle},
	"capital_province":             {Character, Province},
	"commanding_army":              {Character, Army},
	"council_task":                 {Character, CouncilTask}, // also has a prefix form
	"councillor_task_target":       {Character, ck3All},      // output depends on the task
	"court_owner":                  {Character, Character},
	"designated_heir":              {Character, Character},
	"dynasty":                      {Character, Dynasty},
	"employer":                     {Character, Character},
	"father":                       {Character, Character},
	"ghw_beneficiary":              {Character, Character},
	"host":                         {Character, Character},
	"house":                        {Character, DynastyHouse},
	"imprisoner":                   {Character, Character},
	"inspiration":                  {Character, Inspiration},
	"joined_faction":               {Character, Faction},
	"killer":                       {Character, Character},
	"knight_army":                  {Character, Army},
	"liege":                        {Character, Character},
	"liege_or_court_owner":         {Character, Character},
	"matchmaker":                   {Character, Character},
	"mother":                       {Character, Character},
	"player_heir":                  {Character, Character},
	"pregnancy_assumed_father":     {Character, Character},
	"pregnancy_real_father":        {Character, Character},
	"primary_heir":                 {Character, Character},
	"primary_partner":              {Character, Character},
	"primary_spouse":               {Character, Character},
	"primary_title":                {Character, LandedTitle},
	"real_father":                  {Character, Character},
	"realm_priest":                 {Character, Character},
	"top_liege":                    {Character, Character},
	"house_founder":                {DynastyHouse, Character},
	"house_head":                   {DynastyHouse, Character},
	"last_house_head":              {DynastyHouse, Character},
	"combat_attacker":              {Combat, CombatSide},
	"combat_defender":              {Combat, CombatSide},
	"combat_war":                   {Combat, War},
	"combat":                       {CombatSide, Combat},
	"enemy_side":                   {CombatSide, CombatSide},
	"side_commander":               {CombatSide, Character},
	"side_primary_participant":     {CombatSide, Character},
	"faith":                        {Character | LandedTitle | Province | GreatHolyWar, Faith},
	"culture":                      {Character | LandedTitle | Province, Culture},
	"religion":                     {Character | LandedTitle | Province | Faith | GreatHolyWar, Religion},
	"war":                          {CasusBelli, War},
	"calc_culture_dominant_faith":  {Culture, Faith},
	"calc_culture_dominant_religion": {Culture, Religion},
	"culture_head":                 {Culture, Character},
	"story_owner":                  {StoryCycle, Character},
	"founder":                      {Faith, Character},
	"great_holy_war":               {Faith, GreatHolyWar},
	"religious_head":               {Faith, Character},
	"religious_head_title":         {Faith, LandedTitle},
	"inspiration_owner":            {Inspiration, Character},
	"inspiration_sponsor":          {Inspiration, Character},
	"secret_owner":                 {Secret, Character},
	"secret_target":                {Secret, Character},
	"dynast":                       {Dynasty, Character},
	"accolade_owner":               {Accolade, Character},
	"accolade_successor":           {Accolade, Character},
	"dummy_female":                 {None, Character},
	"dummy_male":                   {None, Character},
	"no":                           {None, Bool},
	"yes":                          {None, Bool},
}

func (ck3Tables) PrefixTransition(name string) (PrefixTransition, bool) {
	t, ok := ck3Prefix[name]
	return t, ok
}

// These are absolute scopes (like character:100000) and transitions that
// take a key (like `root.cp:councillor_steward`).
var ck3Prefix = map[string]PrefixTransition{
	"aptitude":       {Character, Value, ItemArg(m.ItemCourtPosition)},
	"array_define":   {None, Value, UncheckedArg()},
	"character":      {None, Character, ItemArg(m.ItemCharacter)},
	"council_task":   {Character, CouncilTask, ItemArg(m.ItemCouncilPosition)},
	"court_position": {Character, Character, ItemArg(m.ItemCourtPosition)},
	"cp":             {Character, Character, ItemArg(m.ItemCouncilPosition)}, // councillor
	"culture":        {None, Culture, ItemArg(m.ItemCulture)},
	"culture_pillar": {None, Culture, ItemArg(m.ItemCulturePillar)},
	"decision":       {None, Flag, ItemArg(m.ItemDecision)},
	"define":         {None, Value, UncheckedArg()},
	"doctrine":       {None, Flag, ItemArg(m.ItemDoctrine)},
	"dynasty":        {None, Dynasty, ItemArg(m.ItemDynasty)},
	"event_id":       {None, Flag, ItemArg(m.ItemEvent)},
	"faith":          {None, Faith, ItemArg(m.ItemFaith)},
	"flag":           {None, Flag, UncheckedArg()},
	"global_var":     {None, ck3All, UncheckedArg()},
	"house":          {None, DynastyHouse, ItemArg(m.ItemHouse)},
	"list_size":      {None, Value, UncheckedArg()},
	"local_var":      {None, ck3All, UncheckedArg()},
	"province":       {None, Province, ItemArg(m.ItemProvince)},
	"religion":       {None, Religion, ItemArg(m.ItemReligion)},
	"scope":          {None, ck3All, UncheckedArg()},
	"struggle":       {None, Struggle, ItemArg(m.ItemStruggle)},
	"title":          {None, LandedTitle, ItemArg(m.ItemTitle)},
	"trait":          {None, Trait, ItemArg(m.ItemTrait)},
	"var":            {ck3All, ck3All, UncheckedArg()},
	"vassal_contract_obligation_level": {Character, Value, UncheckedArg()},
}

func (ck3Tables) IteratorTransition(name string) (Transition, bool) {
	t, ok := ck3Iterator[name]
	return t, ok
}

// Iterator base names. Every entry represents an every_, ordered_, random_
// and any_ version.
var ck3Iterator = map[string]Transition{
	"acclaimed_knight":      {Character, Character},
	"accolade":              {Character, Accolade},
	"activity_participant":  {Activity, Character},
	"ally":                  {Character, Character},
	"ancestor":              {Character, Character},
	"army":                  {Character, Army},
	"army_in_location":      {Province, Army},
	"character_artifact":    {Character, Artifact},
	"character_struggle":    {Character, Struggle},
	"character_in_location": {Province, Character},
	"child":                 {Character, Character},
	"claim":                 {Character, LandedTitle},
	"close_family_member":   {Character, Character},
	"councillor":            {Character, Character},
	"courtier":              {Character, Character},
	"county_in_region":      {None, LandedTitle},
	"culture_county":        {Culture, LandedTitle},
	"culture_global":        {None, Culture},
	"de_jure_county_holder": {LandedTitle, Character},
	"directly_owned_province": {Character, Province},
	"faith_holy_order":      {Faith, HolyOrder},
	"faith_playable_ruler":  {Faith, Character},
	"held_title":            {Character, LandedTitle},
	"hired_mercenary":       {Character, MercenaryCompany},
	"hostile_raider":        {Province, Character},
	"in_list":               {None, ck3All},
	"knight":                {Character, Character},
	"living_character":      {None, Character},
	"parent":                {Character, Character},
	"pilgrim":               {Activity, Character},
	"player":                {None, Character},
	"prisoner":              {Character, Character},
	"realm_county":          {Character, LandedTitle},
	"realm_province":        {Character, Province},
	"relation":              {Character, Character},
	"ruler":                 {None, Character},
	"scheme":                {Character, Scheme},
	"secret":                {Character, Secret},
	"spouse":                {Character, Character},
	"sub_realm_barony":      {Character, LandedTitle},
	"vassal":                {Character, Character},
	"war_ally":              {Character, Character},
	"war_enemy":             {Character, Character},
	"war_participant":       {War, Character},
}

func (ck3Tables) RemovedTransition(name string) (Removed, bool) {
	r, ok := ck3RemovedSimple[name]
	return r, ok
}

var ck3RemovedSimple = map[string]Removed{
	"activity_owner":    {"1.9", "replaced by `activity_host`"},
	"activity_province": {"1.9", "replaced by `activity_location`"},
	"scheme_target":     {"1.13", "replaced by `scheme_target_character`"},
}

func (ck3Tables) RemovedIterator(name string) (Removed, bool) {
	r, ok := ck3RemovedIterator[name]
	return r, ok
}

var ck3RemovedIterator = map[string]Removed{
	"activity_declined": {"1.9", ""},
	"activity_invited":  {"1.9", ""},
	"participant":       {"1.9", ""},
}

func (ck3Tables) CompareTrigger(name string) (Kinds, bool) {
	k, ok := ck3Compare[name]
	return k, ok
}

// Terminal operators: they consume a scope and produce a comparable value
// rather than another scope, so they are only valid as the last chain part.
var ck3Compare = map[string]Kinds{
	"age":                  Character,
	"current_year":         None,
	"current_month":        None,
	"gold":                 Character,
	"piety":                Character,
	"prestige":             Character,
	"dread":                Character,
	"stress":               Character,
	"tyranny":              Character,
	"diplomacy":            Character,
	"martial":              Character,
	"stewardship":          Character,
	"intrigue":             Character,
	"learning":             Character,
	"prowess":              Character,
	"highest_held_title_tier": Character,
	"county_control":       LandedTitle,
	"development_level":    LandedTitle,
	"num_of_relation":      Character,
	"combined_building_level": Province,
	"monthly_income":       Character,
}

func (ck3Tables) NeedsPrefix(name string, oracle Oracle, want Kinds) (string, bool) {
	for _, np := range ck3NeedsPrefix {
		if want != np.kinds {
			continue
		}

		if np.item == "" || oracle.Exists(np.item, name) {
			return np.prefix, true
		}
	}

	return "", false
}

type prefixHint struct {
	kinds  Kinds
	item   m.ItemCategory
	prefix string
}

var ck3NeedsPrefix = []prefixHint{
	{Character, m.ItemCharacter, "character"},
	{Culture, m.ItemCulture, "culture"},
	{Dynasty, m.ItemDynasty, "dynasty"},
	{Faith, m.ItemFaith, "faith"},
	{Flag, "", "flag"},
	{DynastyHouse, m.ItemHouse, "house"},
	{Province, m.ItemProvince, "province"},
	{Religion, m.ItemReligion, "religion"},
	{Struggle, m.ItemStruggle, "struggle"},
	{LandedTitle, m.ItemTitle, "title"},
	{Trait, m.ItemTrait, "trait"},
}

func (ck3Tables) DeduceNamed(name string) (Kinds, bool) {
	k, ok := ck3Deduce[name]
	return k, ok
}

// Kinds deduced from a saved scope's name. Limited to names so conventional
// that using them for a different kind is extremely unlikely.
var ck3Deduce = map[string]Kinds{
	"accolade":            Accolade,
	"activity":            Activity,
	"actor":               Character,
	"attacker":            Character,
	"defender":            Character,
	"recipient":           Character,
	"secondary_actor":     Character,
	"secondary_recipient": Character,
	"mother":              Character,
	"father":              Character,
	"real_father":         Character,
	"child":               Character,
	"councillor":          Character,
	"liege":               Character,
	"courtier":            Character,
	"guest":               Character,
	"host":                Character,
	"army":                Army,
	"artifact":            Artifact,
	"barony":              LandedTitle,
	"county":              LandedTitle,
	"title":               LandedTitle,
	"landed_title":        LandedTitle,
	"combat_side":         CombatSide,
	"council_task":        CouncilTask,
	"culture":             Culture,
	"faction":             Faction,
	"faith":               Faith,
	"province":            Province,
	"scheme":              Scheme,
	"struggle":            Struggle,
	"story":               StoryCycle,
	"war":                 War,
}
