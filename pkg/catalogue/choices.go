package catalogue

import "github.com/rubiojr/catalogue/pkg/field"

// Sort values understood by the search API.
const (
	SortRelevance = ""
	SortDateDesc  = "date:desc"
	SortDateAsc   = "date:asc"
	SortTitleAsc  = "title:asc"
	SortTitleDesc = "title:desc"
)

// Display modes of the results page.
const (
	DisplayList = "list"
	DisplayGrid = "grid"
)

var sortChoices = []field.Choice{
	{Value: SortRelevance, Label: "Relevance"},
	{Value: SortDateDesc, Label: "Date (newest first)"},
	{Value: SortDateAsc, Label: "Date (oldest first)"},
	{Value: SortTitleAsc, Label: "Title (A–Z)"},
	{Value: SortTitleDesc, Label: "Title (Z–A)"},
}

var displayChoices = []field.Choice{
	{Value: DisplayList, Label: "List"},
	{Value: DisplayGrid, Label: "Grid"},
}

var onlineChoices = []field.Choice{
	{Value: "", Label: "All records"},
	{Value: "true", Label: "Available online only"},
}

// TNALevels are the catalogue levels of records held at The National
// Archives, from the broadest to the narrowest.
var TNALevels = []string{
	"Department",
	"Division",
	"Series",
	"Sub-series",
	"Sub-sub-series",
	"Piece",
	"Item",
}

func levelChoices() []field.Choice {
	out := make([]field.Choice, len(TNALevels))
	for i, l := range TNALevels {
		out[i] = field.Choice{Value: l, Label: l}
	}
	return out
}

// collectionChoices maps department reference codes to their display names.
var collectionChoices = []field.Choice{
	{Value: "ADM", Label: "ADM - Admiralty, Navy, Royal Marines, and Coastguard"},
	{Value: "AIR", Label: "AIR - Air Ministry, Royal Air Force, and related bodies"},
	{Value: "BT", Label: "BT - Board of Trade and successors"},
	{Value: "C", Label: "C - Chancery, the Wardrobe, Royal Household, Exchequer and various commissions"},
	{Value: "CAB", Label: "CAB - Cabinet Office"},
	{Value: "CO", Label: "CO - Colonial Office, Commonwealth and Foreign and Commonwealth Offices, Empire Marketing Board, and related bodies"},
	{Value: "DEFE", Label: "DEFE - Ministry of Defence"},
	{Value: "E", Label: "E - Exchequer, Office of First Fruits and Tenths, and the Court of Augmentations"},
	{Value: "FO", Label: "FO - Foreign Office"},
	{Value: "HO", Label: "HO - Home Office"},
	{Value: "IR", Label: "IR - Board of Inland Revenue"},
	{Value: "J", Label: "J - Supreme Court of Judicature and related courts"},
	{Value: "KB", Label: "KB - Court of King's Bench"},
	{Value: "MH", Label: "MH - Ministry of Health and successors, Metropolitan Asylums Board, and related bodies"},
	{Value: "PREM", Label: "PREM - Prime Minister's Office"},
	{Value: "PROB", Label: "PROB - Prerogative Court of Canterbury and related Probate Jurisdictions"},
	{Value: "RAIL", Label: "RAIL - Pre-nationalisation railway companies, canal and other transport undertakings, and British Transport Commission"},
	{Value: "RG", Label: "RG - General Register Office, Office of Population Censuses and Surveys, and Office for National Statistics"},
	{Value: "SP", Label: "SP - State Paper Office"},
	{Value: "T", Label: "T - HM Treasury"},
	{Value: "WO", Label: "WO - War Office, Armed Forces, Judge Advocate General, and related bodies"},
}
