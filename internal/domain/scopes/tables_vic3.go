package scopes

import (
	m "github.com/mouse-blink/pedant/internal/model"
)

// vic3Tables is the Victoria 3 profile. Considerably smaller than the CK3 set;
// it exists mostly to keep the engine honest about per-profile dispatch.
type vic3Tables struct{}

func (vic3Tables) Game() m.Game { return m.GameVic3 }

func (vic3Tables) AllKinds() Kinds { return vic3All }

const vic3All = None | Value | Bool | Flag | Character | Culture | Religion | Province |
	War | Country | State | StateRegion | Battle | Front | InterestGroup | JournalEntry |
	Market | Law | Party | Pop | BuildingKind | Goods

func (vic3Tables) KindFromName(name string) (Kinds, bool) {
	k, ok := vic3KindNames[name]
	return k, ok
}

var vic3KindNames = map[string]Kinds{
	"none":           None,
	"value":          Value,
	"bool":           Bool,
	"flag":           Flag,
	"character":      Character,
	"culture":        Culture,
	"religion":       Religion,
	"province":       Province,
	"war":            War,
	"country":        Country,
	"state":          State,
	"state_region":   StateRegion,
	"battle":         Battle,
	"front":          Front,
	"interest_group": InterestGroup,
	"journalentry":   JournalEntry, // the game spells it without the underscore
	"market":         Market,
	"law":            Law,
	"party":          Party,
	"pop":            Pop,
	"building":       BuildingKind,
	"goods":          Goods,
}

func (vic3Tables) Describe(k Kinds) string { return profileDescribe(k, vic3All) }

func (vic3Tables) SimpleTransition(name string) (Transition, bool) {
	t, ok := vic3Simple[name]
	return t, ok
}

var vic3Simple = map[string]Transition{
	"battle_side_attacker": {Battle, Country},
	"battle_side_defender": {Battle, Country},
	"capital":              {Country, State},
	"country":              {Character | State | InterestGroup | Market | Pop, Country},
	"culture":              {Character | Pop, Culture},
	"front":                {Battle, Front},
	"home_country":         {Character, Country},
	"ig":                   {Character, InterestGroup},
	"leader":               {InterestGroup | Party, Character},
	"market":               {Country | State | Goods, Market},
	"owner":                {BuildingKind | Pop, Country},
	"party":                {InterestGroup, Party},
	"religion":             {Character | Pop, Religion},
	"ruler":                {Country, Character},
	"state":                {BuildingKind | Pop | Province, State},
	"state_region":         {State | Province, StateRegion},
	"workforce":            {BuildingKind, Value},
	"no":                   {None, Bool},
	"yes":                  {None, Bool},
}

func (vic3Tables) PrefixTransition(name string) (PrefixTransition, bool) {
	t, ok := vic3Prefix[name]
	return t, ok
}

var vic3Prefix = map[string]PrefixTransition{
	"c":          {None, Country, ItemArg(m.ItemCountry)},
	"cu":         {None, Culture, ItemArg(m.ItemCulture)},
	"flag":       {None, Flag, UncheckedArg()},
	"g":          {None, Goods, ItemArg(m.ItemGoods)},
	"global_var": {None, vic3All, UncheckedArg()},
	"ig":         {Country, InterestGroup, ItemArg(m.ItemInterestGroup)},
	"law_type":   {None, Law, ItemArg(m.ItemLaw)},
	"local_var":  {None, vic3All, UncheckedArg()},
	"rel":        {None, Religion, ItemArg(m.ItemReligion)},
	"s":          {None, StateRegion, ItemArg(m.ItemState)},
	"scope":      {None, vic3All, UncheckedArg()},
	"var":        {vic3All, vic3All, UncheckedArg()},
}

func (vic3Tables) IteratorTransition(name string) (Transition, bool) {
	t, ok := vic3Iterator[name]
	return t, ok
}

var vic3Iterator = map[string]Transition{
	"character":           {None, Character},
	"country":             {None, Country},
	"in_list":             {None, vic3All},
	"interest_group":      {Country, InterestGroup},
	"neighbouring_state":  {State, State},
	"scope_building":      {State | Country, BuildingKind},
	"scope_pop":           {State | Country | InterestGroup, Pop},
	"scope_state":         {Country | StateRegion, State},
	"strategic_objective": {Country, State},
	"subject_or_below":    {Country, Country},
}

func (vic3Tables) RemovedTransition(name string) (Removed, bool) {
	r, ok := vic3RemovedSimple[name]
	return r, ok
}

var vic3RemovedSimple = map[string]Removed{
	"naval_hq": {"1.2", "replaced by `military_formation`"},
}

func (vic3Tables) RemovedIterator(name string) (Removed, bool) {
	return Removed{}, false
}

func (vic3Tables) CompareTrigger(name string) (Kinds, bool) {
	k, ok := vic3Compare[name]
	return k, ok
}

var vic3Compare = map[string]Kinds{
	"gdp":               Country,
	"literacy_rate":     Country,
	"loyalty":           Pop,
	"prestige":          Country,
	"radicals_fraction": Country,
	"total_population":  Country | State,
}

func (vic3Tables) NeedsPrefix(name string, oracle Oracle, want Kinds) (string, bool) {
	for _, np := range vic3NeedsPrefix {
		if want != np.kinds {
			continue
		}

		if np.item == "" || oracle.Exists(np.item, name) {
			return np.prefix, true
		}
	}

	return "", false
}

var vic3NeedsPrefix = []prefixHint{
	{Country, m.ItemCountry, "c"},
	{Culture, m.ItemCulture, "cu"},
	{Flag, "", "flag"},
	{Goods, m.ItemGoods, "g"},
	{Law, m.ItemLaw, "law_type"},
	{Religion, m.ItemReligion, "rel"},
	{StateRegion, m.ItemState, "s"},
}

func (vic3Tables) DeduceNamed(name string) (Kinds, bool) {
	k, ok := vic3Deduce[name]
	return k, ok
}

// Less can be deduced with certainty for vic3 because of state vs
// state_region, law vs law_type, and similar splits.
var vic3Deduce = map[string]Kinds{
	"admiral":        Character,
	"general":        Character,
	"character":      Character,
	"actor":          Country,
	"country":        Country,
	"enemy_country":  Country,
	"initiator":      Country,
	"target_country": Country,
	"battle":         Battle,
	"interest_group": InterestGroup,
	"journal_entry":  JournalEntry,
	"market":         Market,
}
