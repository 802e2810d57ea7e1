package output

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// MsgKey names a catalog message. Text that is not a catalog key is spoken
// as is.
type MsgKey string

// Message keys.
const (
	MsgNoFocus            = "no_focus"
	MsgStickyOn           = "sticky_mode_enabled"
	MsgStickyOff          = "sticky_mode_disabled"
	MsgEarconsOn          = "earcons_on"
	MsgEarconsOff         = "earcons_off"
	MsgSpeechOn           = "speech_on"
	MsgSpeechOff          = "speech_off"
	MsgRate               = "rate"
	MsgPitch              = "pitch"
	MsgVolume             = "volume"
	MsgTypingEcho         = "typing_echo"
	MsgPunctuationEcho    = "punctuation_echo"
	MsgBrailleCaptionsOn  = "braille_captions_on"
	MsgBrailleCaptionsOff = "braille_captions_off"
	MsgBrailleTable       = "braille_table"
	MsgLangSwitchOn       = "language_switching_on"
	MsgLangSwitchOff      = "language_switching_off"
	MsgReadOnlyOn         = "read_only_editing_on"
	MsgReadOnlyOff        = "read_only_editing_off"
	MsgOpenOptions        = "open_options"
	MsgOpenLearnMode      = "open_learn_mode"
	MsgOpenLog            = "open_log"
	MsgTime               = "announce_time"
	MsgBatteryUnknown     = "battery_unknown"
	MsgVersion            = "version"
	MsgBeginSelection     = "begin_selection"
	MsgEndSelection       = "end_selection"
	MsgVoiceUnavailable   = "voice_unavailable"
	MsgNotInTable         = "not_inside_table"
	MsgNoURL              = "no_url"
	MsgURL                = "url"
	MsgTitle              = "title"
	MsgFlowClosed         = "flow_closed"
	MsgNoFlow             = "no_flow"
	MsgUnknownFlow        = "unknown_flow"
	MsgReadingStopped     = "reading_stopped"
	MsgNoActiveDescendant = "no_active_descendant"

	MsgNoNextObject       = "no_next_object"
	MsgNoPrevObject       = "no_previous_object"
	MsgNoNextCharacter    = "no_next_character"
	MsgNoPrevCharacter    = "no_previous_character"
	MsgNoNextWord         = "no_next_word"
	MsgNoPrevWord         = "no_previous_word"
	MsgNoNextLine         = "no_next_line"
	MsgNoPrevLine         = "no_previous_line"
	MsgNoNextHeading      = "no_next_heading"
	MsgNoPrevHeading      = "no_previous_heading"
	MsgNoNextHeadingLevel = "no_next_heading_level"
	MsgNoPrevHeadingLevel = "no_previous_heading_level"
	MsgNoNextLink         = "no_next_link"
	MsgNoPrevLink         = "no_previous_link"
	MsgNoNextVisitedLink  = "no_next_visited_link"
	MsgNoPrevVisitedLink  = "no_previous_visited_link"
	MsgNoNextButton       = "no_next_button"
	MsgNoPrevButton       = "no_previous_button"
	MsgNoNextCheckbox     = "no_next_checkbox"
	MsgNoPrevCheckbox     = "no_previous_checkbox"
	MsgNoNextComboBox     = "no_next_combo_box"
	MsgNoPrevComboBox     = "no_previous_combo_box"
	MsgNoNextEditText     = "no_next_edit_text"
	MsgNoPrevEditText     = "no_previous_edit_text"
	MsgNoNextFormField    = "no_next_form_field"
	MsgNoPrevFormField    = "no_previous_form_field"
	MsgNoNextGraphic      = "no_next_graphic"
	MsgNoPrevGraphic      = "no_previous_graphic"
	MsgNoNextLandmark     = "no_next_landmark"
	MsgNoPrevLandmark     = "no_previous_landmark"
	MsgNoNextList         = "no_next_list"
	MsgNoPrevList         = "no_previous_list"
	MsgNoNextTable        = "no_next_table"
	MsgNoPrevTable        = "no_previous_table"
	MsgNoNextInvalid      = "no_next_invalid_item"
	MsgNoPrevInvalid      = "no_previous_invalid_item"
	MsgNoNextSame         = "no_next_same_element"
	MsgNoPrevSame         = "no_previous_same_element"
	MsgNoNextMath         = "no_next_math"
	MsgNoPrevMath         = "no_previous_math"
	MsgNoNextGroup        = "no_next_group"
	MsgNoPrevGroup        = "no_previous_group"
	MsgNoCellLeft         = "no_cell_left"
	MsgNoCellRight        = "no_cell_right"
	MsgNoCellAbove        = "no_cell_above"
	MsgNoCellBelow        = "no_cell_below"

	MsgRoleHeading     = "role_heading"
	MsgRoleLink        = "role_link"
	MsgRoleVisitedLink = "role_visited_link"
	MsgRoleButton      = "role_button"
	MsgRoleCheckbox    = "role_checkbox"
	MsgRoleRadio       = "role_radio"
	MsgRoleComboBox    = "role_combo_box"
	MsgRoleTextField   = "role_text_field"
	MsgRoleTextArea    = "role_text_area"
	MsgRoleSlider      = "role_slider"
	MsgRoleImage       = "role_image"
	MsgRoleList        = "role_list"
	MsgRoleListItem    = "role_list_item"
	MsgRoleTable       = "role_table"
	MsgRoleCell        = "role_cell"
	MsgRoleMath        = "role_math"
	MsgRoleMain        = "role_main"
	MsgRoleNavigation  = "role_navigation"
	MsgRoleBanner      = "role_banner"
	MsgRoleRegion      = "role_region"
	MsgRoleContentInfo = "role_content_info"
	MsgRoleGroup       = "role_group"

	MsgStateChecked    = "state_checked"
	MsgStateNotChecked = "state_not_checked"
	MsgStateInvalid    = "state_invalid"
	MsgStateReadOnly   = "state_read_only"

	MsgHintActivate = "hint_activate"
	MsgHintToggle   = "hint_toggle"
	MsgHintEdit     = "hint_edit"
)

var english = map[string]string{
	MsgNoFocus:            "No current focus",
	MsgStickyOn:           "Sticky mode enabled",
	MsgStickyOff:          "Sticky mode disabled",
	MsgEarconsOn:          "Earcons on",
	MsgEarconsOff:         "Earcons off",
	MsgSpeechOn:           "Speech on",
	MsgSpeechOff:          "Speech off",
	MsgRate:               "Rate %d percent",
	MsgPitch:              "Pitch %d percent",
	MsgVolume:             "Volume %d percent",
	MsgTypingEcho:         "Typing echo %s",
	MsgPunctuationEcho:    "Punctuation echo %s",
	MsgBrailleCaptionsOn:  "Braille captions on",
	MsgBrailleCaptionsOff: "Braille captions off",
	MsgBrailleTable:       "Braille table %s",
	MsgLangSwitchOn:       "Language switching on",
	MsgLangSwitchOff:      "Language switching off",
	MsgReadOnlyOn:         "Read only editing on",
	MsgReadOnlyOff:        "Read only editing off",
	MsgOpenOptions:        "Opening options",
	MsgOpenLearnMode:      "Opening learn mode",
	MsgOpenLog:            "Opening log",
	MsgTime:               "It is %s",
	MsgBatteryUnknown:     "Battery status unavailable",
	MsgVersion:            "voxnav version %s",
	MsgBeginSelection:     "Start selection",
	MsgEndSelection:       "End selection",
	MsgVoiceUnavailable:   "No voice available for %s",
	MsgNotInTable:         "Not inside a table",
	MsgNoURL:              "No URL",
	MsgURL:                "Link to %s",
	MsgTitle:              "%s",
	MsgFlowClosed:         "Exited guided flow",
	MsgNoFlow:             "No guided flow is active",
	MsgUnknownFlow:        "No guided flow named %s",
	MsgReadingStopped:     "Stopped",
	MsgNoActiveDescendant: "No item selected",

	MsgNoNextObject:       "No next object",
	MsgNoPrevObject:       "No previous object",
	MsgNoNextCharacter:    "End of text",
	MsgNoPrevCharacter:    "Start of text",
	MsgNoNextWord:         "No next word",
	MsgNoPrevWord:         "No previous word",
	MsgNoNextLine:         "No next line",
	MsgNoPrevLine:         "No previous line",
	MsgNoNextHeading:      "No next heading",
	MsgNoPrevHeading:      "No previous heading",
	MsgNoNextHeadingLevel: "No next level %d heading",
	MsgNoPrevHeadingLevel: "No previous level %d heading",
	MsgNoNextLink:         "No next link",
	MsgNoPrevLink:         "No previous link",
	MsgNoNextVisitedLink:  "No next visited link",
	MsgNoPrevVisitedLink:  "No previous visited link",
	MsgNoNextButton:       "No next button",
	MsgNoPrevButton:       "No previous button",
	MsgNoNextCheckbox:     "No next check box",
	MsgNoPrevCheckbox:     "No previous check box",
	MsgNoNextComboBox:     "No next combo box",
	MsgNoPrevComboBox:     "No previous combo box",
	MsgNoNextEditText:     "No next edit text",
	MsgNoPrevEditText:     "No previous edit text",
	MsgNoNextFormField:    "No next form field",
	MsgNoPrevFormField:    "No previous form field",
	MsgNoNextGraphic:      "No next graphic",
	MsgNoPrevGraphic:      "No previous graphic",
	MsgNoNextLandmark:     "No next landmark",
	MsgNoPrevLandmark:     "No previous landmark",
	MsgNoNextList:         "No next list",
	MsgNoPrevList:         "No previous list",
	MsgNoNextTable:        "No next table",
	MsgNoPrevTable:        "No previous table",
	MsgNoNextInvalid:      "No next invalid item",
	MsgNoPrevInvalid:      "No previous invalid item",
	MsgNoNextSame:         "No next matching element",
	MsgNoPrevSame:         "No previous matching element",
	MsgNoNextMath:         "No next math",
	MsgNoPrevMath:         "No previous math",
	MsgNoNextGroup:        "No next group",
	MsgNoPrevGroup:        "No previous group",
	MsgNoCellLeft:         "No cell left",
	MsgNoCellRight:        "No cell right",
	MsgNoCellAbove:        "No cell above",
	MsgNoCellBelow:        "No cell below",

	MsgRoleHeading:     "Heading %d",
	MsgRoleLink:        "Link",
	MsgRoleVisitedLink: "Visited link",
	MsgRoleButton:      "Button",
	MsgRoleCheckbox:    "Check box",
	MsgRoleRadio:       "Radio button",
	MsgRoleComboBox:    "Combo box",
	MsgRoleTextField:   "Edit text",
	MsgRoleTextArea:    "Multi-line edit text",
	MsgRoleSlider:      "Slider",
	MsgRoleImage:       "Image",
	MsgRoleList:        "List with %d items",
	MsgRoleListItem:    "List item",
	MsgRoleTable:       "Table with %d rows and %d columns",
	MsgRoleCell:        "Row %d, column %d",
	MsgRoleMath:        "Math",
	MsgRoleMain:        "Main",
	MsgRoleNavigation:  "Navigation",
	MsgRoleBanner:      "Banner",
	MsgRoleRegion:      "Region",
	MsgRoleContentInfo: "Content info",
	MsgRoleGroup:       "Group",

	MsgStateChecked:    "Checked",
	MsgStateNotChecked: "Not checked",
	MsgStateInvalid:    "Invalid entry",
	MsgStateReadOnly:   "Read only",

	MsgHintActivate: "Press Search+Space to activate",
	MsgHintToggle:   "Press Search+Space to toggle",
	MsgHintEdit:     "Type to enter text",
}

var german = map[string]string{
	MsgNoFocus:       "Kein aktueller Fokus",
	MsgStickyOn:      "Einrastmodus aktiviert",
	MsgStickyOff:     "Einrastmodus deaktiviert",
	MsgNoNextHeading: "Keine nächste Überschrift",
	MsgNoPrevHeading: "Keine vorherige Überschrift",
	MsgRoleHeading:   "Überschrift %d",
	MsgRoleLink:      "Link",
	MsgRoleButton:    "Schaltfläche",
	MsgEndSelection:  "Auswahl beenden",
}

// catalogLanguages are the languages with translations. English comes first
// and is the fallback.
var catalogLanguages = []language.Tag{language.English, language.German}

var translations = map[language.Tag]map[string]string{
	language.English: english,
	language.German:  german,
}

// newCatalog builds the message catalog. Keys missing from a translation
// resolve to the English text.
func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, tag := range catalogLanguages {
		for k, v := range english {
			if t, ok := translations[tag][k]; ok {
				v = t
			}
			_ = b.SetString(tag, k, v)
		}
	}
	return b
}

// catalogTag picks the catalog language closest to the UI locale.
func catalogTag(ui language.Tag) language.Tag {
	m := language.NewMatcher(catalogLanguages)
	_, idx, conf := m.Match(ui)
	if conf == language.No {
		return language.English
	}
	return catalogLanguages[idx]
}

// newPrinter returns a printer for the UI locale.
func newPrinter(tag language.Tag, cat catalog.Catalog) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// hasMessage reports whether key is a catalog message.
func hasMessage(key MsgKey) bool {
	_, ok := english[string(key)]
	return ok
}
