package model

// ItemCategory names a class of game-content identifier that mods can declare
// and script can refer to by name.
type ItemCategory string

// Item categories consulted when validating prefixed scope transitions.
const (
	ItemCharacter       ItemCategory = "character"
	ItemCulture         ItemCategory = "culture"
	ItemCulturePillar   ItemCategory = "culture_pillar"
	ItemCultureEra      ItemCategory = "culture_era"
	ItemFaith           ItemCategory = "faith"
	ItemReligion        ItemCategory = "religion"
	ItemProvince        ItemCategory = "province"
	ItemTitle           ItemCategory = "landed_title"
	ItemDynasty         ItemCategory = "dynasty"
	ItemHouse           ItemCategory = "dynasty_house"
	ItemStruggle        ItemCategory = "struggle"
	ItemRegion          ItemCategory = "region"
	ItemDecision        ItemCategory = "decision"
	ItemDoctrine        ItemCategory = "doctrine"
	ItemTrait           ItemCategory = "trait"
	ItemEvent           ItemCategory = "event"
	ItemCouncilPosition ItemCategory = "council_position"
	ItemCourtPosition   ItemCategory = "court_position"
	ItemScriptedTrigger ItemCategory = "scripted_trigger"
	ItemScriptedEffect  ItemCategory = "scripted_effect"
	ItemScriptValue     ItemCategory = "script_value"
	ItemCountry         ItemCategory = "country"
	ItemState           ItemCategory = "state"
	ItemLaw             ItemCategory = "law"
	ItemInterestGroup   ItemCategory = "interest_group"
	ItemGoods           ItemCategory = "goods"
	ItemBuildingType    ItemCategory = "building_type"
)
