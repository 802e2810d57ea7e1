// Package command defines the closed set of screen reader commands and the
// immutable navigation descriptor table.
package command

import "fmt"

// Command identifies a user command.
type Command uint16

const (
	Unknown Command = iota

	// State-only commands.
	ToggleStickyMode
	ToggleEarcons
	ToggleSpeechOnOrOff
	IncreaseTtsRate
	DecreaseTtsRate
	IncreaseTtsPitch
	DecreaseTtsPitch
	IncreaseTtsVolume
	DecreaseTtsVolume
	CycleTypingEcho
	CyclePunctuationEcho
	ToggleBrailleCaptions
	ToggleBrailleTable
	ToggleLanguageSwitching
	ToggleReadOnlyEditing
	ShowOptionsPage
	ShowLearnModePage
	ShowLogPage
	AnnounceBatteryDescription
	SpeakTimeAndDate
	AnnounceVersion
	StopSpeech
	CloseGuidedFlow

	// Unit navigation.
	NextObject
	PreviousObject
	NextCharacter
	PreviousCharacter
	NextWord
	PreviousWord
	NextLine
	PreviousLine
	JumpToTop
	JumpToBottom
	NextGroup
	PreviousGroup

	// Predicate navigation.
	NextHeading
	PreviousHeading
	NextHeading1
	PreviousHeading1
	NextHeading2
	PreviousHeading2
	NextHeading3
	PreviousHeading3
	NextHeading4
	PreviousHeading4
	NextHeading5
	PreviousHeading5
	NextHeading6
	PreviousHeading6
	NextLink
	PreviousLink
	NextVisitedLink
	PreviousVisitedLink
	NextButton
	PreviousButton
	NextCheckbox
	PreviousCheckbox
	NextComboBox
	PreviousComboBox
	NextEditText
	PreviousEditText
	NextFormField
	PreviousFormField
	NextGraphic
	PreviousGraphic
	NextLandmark
	PreviousLandmark
	NextList
	PreviousList
	NextTable
	PreviousTable
	NextInvalidItem
	PreviousInvalidItem
	NextSimilarItem
	PreviousSimilarItem
	NextMath
	PreviousMath

	// Table navigation.
	NextRow
	PreviousRow
	NextCol
	PreviousCol
	GoToRowFirstCell
	GoToRowLastCell
	GoToColFirstCell
	GoToColLastCell
	GoToFirstCell
	GoToLastCell

	// Range actions.
	ForceClickOnCurrentItem
	ReadFromHere
	ToggleSelection
	ReadCurrentTitle
	ReadCurrentURL
	ReadLinkURL
	FullyDescribe
	ReadPhoneticPronunciation
	SpeakCurrentRange

	numCommands
)

var names = [...]string{
	Unknown: "unknown",

	ToggleStickyMode:           "toggleStickyMode",
	ToggleEarcons:              "toggleEarcons",
	ToggleSpeechOnOrOff:        "toggleSpeechOnOrOff",
	IncreaseTtsRate:            "increaseTtsRate",
	DecreaseTtsRate:            "decreaseTtsRate",
	IncreaseTtsPitch:           "increaseTtsPitch",
	DecreaseTtsPitch:           "decreaseTtsPitch",
	IncreaseTtsVolume:          "increaseTtsVolume",
	DecreaseTtsVolume:          "decreaseTtsVolume",
	CycleTypingEcho:            "cycleTypingEcho",
	CyclePunctuationEcho:       "cyclePunctuationEcho",
	ToggleBrailleCaptions:      "toggleBrailleCaptions",
	ToggleBrailleTable:         "toggleBrailleTable",
	ToggleLanguageSwitching:    "toggleLanguageSwitching",
	ToggleReadOnlyEditing:      "toggleReadOnlyEditing",
	ShowOptionsPage:            "showOptionsPage",
	ShowLearnModePage:          "showLearnModePage",
	ShowLogPage:                "showLogPage",
	AnnounceBatteryDescription: "announceBatteryDescription",
	SpeakTimeAndDate:           "speakTimeAndDate",
	AnnounceVersion:            "announceVersion",
	StopSpeech:                 "stopSpeech",
	CloseGuidedFlow:            "closeGuidedFlow",

	NextObject:        "nextObject",
	PreviousObject:    "previousObject",
	NextCharacter:     "nextCharacter",
	PreviousCharacter: "previousCharacter",
	NextWord:          "nextWord",
	PreviousWord:      "previousWord",
	NextLine:          "nextLine",
	PreviousLine:      "previousLine",
	JumpToTop:         "jumpToTop",
	JumpToBottom:      "jumpToBottom",
	NextGroup:         "nextGroup",
	PreviousGroup:     "previousGroup",

	NextHeading:         "nextHeading",
	PreviousHeading:     "previousHeading",
	NextHeading1:        "nextHeading1",
	PreviousHeading1:    "previousHeading1",
	NextHeading2:        "nextHeading2",
	PreviousHeading2:    "previousHeading2",
	NextHeading3:        "nextHeading3",
	PreviousHeading3:    "previousHeading3",
	NextHeading4:        "nextHeading4",
	PreviousHeading4:    "previousHeading4",
	NextHeading5:        "nextHeading5",
	PreviousHeading5:    "previousHeading5",
	NextHeading6:        "nextHeading6",
	PreviousHeading6:    "previousHeading6",
	NextLink:            "nextLink",
	PreviousLink:        "previousLink",
	NextVisitedLink:     "nextVisitedLink",
	PreviousVisitedLink: "previousVisitedLink",
	NextButton:          "nextButton",
	PreviousButton:      "previousButton",
	NextCheckbox:        "nextCheckbox",
	PreviousCheckbox:    "previousCheckbox",
	NextComboBox:        "nextComboBox",
	PreviousComboBox:    "previousComboBox",
	NextEditText:        "nextEditText",
	PreviousEditText:    "previousEditText",
	NextFormField:       "nextFormField",
	PreviousFormField:   "previousFormField",
	NextGraphic:         "nextGraphic",
	PreviousGraphic:     "previousGraphic",
	NextLandmark:        "nextLandmark",
	PreviousLandmark:    "previousLandmark",
	NextList:            "nextList",
	PreviousList:        "previousList",
	NextTable:           "nextTable",
	PreviousTable:       "previousTable",
	NextInvalidItem:     "nextInvalidItem",
	PreviousInvalidItem: "previousInvalidItem",
	NextSimilarItem:     "nextSimilarItem",
	PreviousSimilarItem: "previousSimilarItem",
	NextMath:            "nextMath",
	PreviousMath:        "previousMath",

	NextRow:          "nextRow",
	PreviousRow:      "previousRow",
	NextCol:          "nextCol",
	PreviousCol:      "previousCol",
	GoToRowFirstCell: "goToRowFirstCell",
	GoToRowLastCell:  "goToRowLastCell",
	GoToColFirstCell: "goToColFirstCell",
	GoToColLastCell:  "goToColLastCell",
	GoToFirstCell:    "goToFirstCell",
	GoToLastCell:     "goToLastCell",

	ForceClickOnCurrentItem:   "forceClickOnCurrentItem",
	ReadFromHere:              "readFromHere",
	ToggleSelection:           "toggleSelection",
	ReadCurrentTitle:          "readCurrentTitle",
	ReadCurrentURL:            "readCurrentURL",
	ReadLinkURL:               "readLinkURL",
	FullyDescribe:             "fullyDescribe",
	ReadPhoneticPronunciation: "readPhoneticPronunciation",
	SpeakCurrentRange:         "speakCurrentRange",
}

var byName map[string]Command

func init() {
	byName = make(map[string]Command, len(names))
	for c, name := range names {
		if Command(c) != Unknown && name != "" {
			byName[name] = Command(c)
		}
	}
}

// String returns the command identifier.
func (c Command) String() string {
	if int(c) < len(names) && names[c] != "" {
		return names[c]
	}
	return fmt.Sprintf("Command(%d)", c)
}

// Valid reports whether c is a known command.
func (c Command) Valid() bool {
	return c > Unknown && c < numCommands
}

// Parse resolves a command identifier.
func Parse(name string) (Command, bool) {
	c, ok := byName[name]
	return c, ok
}

// All returns every known command in declaration order.
func All() []Command {
	out := make([]Command, 0, numCommands-1)
	for c := Unknown + 1; c < numCommands; c++ {
		out = append(out, c)
	}
	return out
}

// Tier classifies how a command interacts with the current range.
type Tier uint8

const (
	// TierStateOnly commands never read the current range.
	TierStateOnly Tier = iota
	// TierRangeRequired commands need a valid current range.
	TierRangeRequired
)

// String returns the tier name.
func (t Tier) String() string {
	if t == TierStateOnly {
		return "state-only"
	}
	return "range-required"
}

// Tier returns the tier of c.
func (c Command) Tier() Tier {
	if c > Unknown && c <= CloseGuidedFlow {
		return TierStateOnly
	}
	return TierRangeRequired
}

// IsNavigation reports whether c has a navigation descriptor.
func (c Command) IsNavigation() bool {
	_, ok := descriptors[c]
	return ok
}
