package keymap

// Default returns the built-in bindings. Search is the screen reader
// modifier; terminals without one send Alt instead.
func Default() *Keymap {
	return &Keymap{
		Name:     "default",
		Source:   "default",
		Bindings: defaultBindings(),
		Gestures: map[string]string{
			"swipeRight1":      "nextObject",
			"swipeLeft1":       "previousObject",
			"swipeDown1":       "nextLine",
			"swipeUp1":         "previousLine",
			"swipeRight2":      "nextHeading",
			"swipeLeft2":       "previousHeading",
			"swipeDown2":       "readFromHere",
			"swipeUp2":         "jumpToTop",
			"tap2":             "stopSpeech",
			"doubleTap1":       "forceClickOnCurrentItem",
			"swipeLeft3":       "previousGroup",
			"swipeRight3":      "nextGroup",
			"tap4":             "showOptionsPage",
			"swipeDown3":       "nextLink",
			"swipeUp3":         "previousLink",
			"touchExploreHold": "speakCurrentRange",
		},
		Braille: map[string]string{
			"panLeft":       "previousLine",
			"panRight":      "nextLine",
			"routing":       "forceClickOnCurrentItem",
			"chord_h":       "nextHeading",
			"chord_shift_h": "previousHeading",
			"chord_l":       "nextLink",
			"chord_space":   "stopSpeech",
		},
	}
}

func defaultBindings() []Binding {
	nav := "Navigation"
	jump := "Jump"
	table := "Tables"
	info := "Information"
	opts := "Options"
	return []Binding{
		// Object, line, word and character movement
		{Keys: "Search+Right", Command: "nextObject", Description: "Next object", Category: nav},
		{Keys: "Search+Left", Command: "previousObject", Description: "Previous object", Category: nav},
		{Keys: "Search+Down", Command: "nextLine", Description: "Next line", Category: nav},
		{Keys: "Search+Up", Command: "previousLine", Description: "Previous line", Category: nav},
		{Keys: "Search+Shift+Right", Command: "nextWord", Description: "Next word", Category: nav},
		{Keys: "Search+Shift+Left", Command: "previousWord", Description: "Previous word", Category: nav},
		{Keys: "Search+Shift+Down", Command: "nextCharacter", Description: "Next character", Category: nav},
		{Keys: "Search+Shift+Up", Command: "previousCharacter", Description: "Previous character", Category: nav},
		{Keys: "Search+Ctrl+Left", Command: "jumpToTop", Description: "Top of page", Category: nav},
		{Keys: "Search+Ctrl+Right", Command: "jumpToBottom", Description: "Bottom of page", Category: nav},
		{Keys: "Search+Ctrl+Down", Command: "nextGroup", Description: "Next group", Category: nav},
		{Keys: "Search+Ctrl+Up", Command: "previousGroup", Description: "Previous group", Category: nav},

		// Jump commands
		{Keys: "Search+H", Command: "nextHeading", Description: "Next heading", Category: jump},
		{Keys: "Search+Shift+H", Command: "previousHeading", Description: "Previous heading", Category: jump},
		{Keys: "Search+1", Command: "nextHeading1", Category: jump},
		{Keys: "Search+Shift+1", Command: "previousHeading1", Category: jump},
		{Keys: "Search+2", Command: "nextHeading2", Category: jump},
		{Keys: "Search+Shift+2", Command: "previousHeading2", Category: jump},
		{Keys: "Search+3", Command: "nextHeading3", Category: jump},
		{Keys: "Search+Shift+3", Command: "previousHeading3", Category: jump},
		{Keys: "Search+4", Command: "nextHeading4", Category: jump},
		{Keys: "Search+Shift+4", Command: "previousHeading4", Category: jump},
		{Keys: "Search+5", Command: "nextHeading5", Category: jump},
		{Keys: "Search+Shift+5", Command: "previousHeading5", Category: jump},
		{Keys: "Search+6", Command: "nextHeading6", Category: jump},
		{Keys: "Search+Shift+6", Command: "previousHeading6", Category: jump},
		{Keys: "Search+L", Command: "nextLink", Description: "Next link", Category: jump},
		{Keys: "Search+Shift+L", Command: "previousLink", Description: "Previous link", Category: jump},
		{Keys: "Search+V", Command: "nextVisitedLink", Category: jump},
		{Keys: "Search+Shift+V", Command: "previousVisitedLink", Category: jump},
		{Keys: "Search+B", Command: "nextButton", Description: "Next button", Category: jump},
		{Keys: "Search+Shift+B", Command: "previousButton", Description: "Previous button", Category: jump},
		{Keys: "Search+X", Command: "nextCheckbox", Category: jump},
		{Keys: "Search+Shift+X", Command: "previousCheckbox", Category: jump},
		{Keys: "Search+C", Command: "nextComboBox", Category: jump},
		{Keys: "Search+Shift+C", Command: "previousComboBox", Category: jump},
		{Keys: "Search+E", Command: "nextEditText", Category: jump},
		{Keys: "Search+Shift+E", Command: "previousEditText", Category: jump},
		{Keys: "Search+F", Command: "nextFormField", Category: jump},
		{Keys: "Search+Shift+F", Command: "previousFormField", Category: jump},
		{Keys: "Search+G", Command: "nextGraphic", Category: jump},
		{Keys: "Search+Shift+G", Command: "previousGraphic", Category: jump},
		{Keys: "Search+;", Command: "nextLandmark", Category: jump},
		{Keys: "Search+Shift+;", Command: "previousLandmark", Category: jump},
		{Keys: "Search+J", Command: "nextList", Category: jump},
		{Keys: "Search+Shift+J", Command: "previousList", Category: jump},
		{Keys: "Search+T", Command: "nextTable", Category: jump},
		{Keys: "Search+Shift+T", Command: "previousTable", Category: jump},
		{Keys: "Search+I", Command: "nextInvalidItem", Category: jump},
		{Keys: "Search+Shift+I", Command: "previousInvalidItem", Category: jump},
		{Keys: "Search+Y", Command: "nextSimilarItem", Category: jump},
		{Keys: "Search+Shift+Y", Command: "previousSimilarItem", Category: jump},
		{Keys: "Search+M", Command: "nextMath", Category: jump},
		{Keys: "Search+Shift+M", Command: "previousMath", Category: jump},

		// Tables
		{Keys: "Search+Ctrl+Alt+Down", Command: "nextRow", Category: table},
		{Keys: "Search+Ctrl+Alt+Up", Command: "previousRow", Category: table},
		{Keys: "Search+Ctrl+Alt+Right", Command: "nextCol", Category: table},
		{Keys: "Search+Ctrl+Alt+Left", Command: "previousCol", Category: table},
		{Keys: "Search+Alt+Shift+Left", Command: "goToRowFirstCell", Category: table},
		{Keys: "Search+Alt+Shift+Right", Command: "goToRowLastCell", Category: table},
		{Keys: "Search+Alt+Shift+Up", Command: "goToColFirstCell", Category: table},
		{Keys: "Search+Alt+Shift+Down", Command: "goToColLastCell", Category: table},
		{Keys: "Search+Alt+Home", Command: "goToFirstCell", Category: table},
		{Keys: "Search+Alt+End", Command: "goToLastCell", Category: table},

		// Information and actions
		{Keys: "Search+Space", Command: "forceClickOnCurrentItem", Category: info},
		{Keys: "Search+R", Command: "readFromHere", Description: "Read from here", Category: info},
		{Keys: "Search+S", Command: "toggleSelection", Category: info},
		{Keys: "Search+A t", Command: "readCurrentTitle", Category: info},
		{Keys: "Search+A u", Command: "readCurrentURL", Category: info},
		{Keys: "Search+A l", Command: "readLinkURL", Category: info},
		{Keys: "Search+K", Command: "fullyDescribe", Category: info},
		{Keys: "Search+A c", Command: "readPhoneticPronunciation", Category: info},
		{Keys: "Search+A a", Command: "speakCurrentRange", Category: info},
		{Keys: "Search+O b", Command: "announceBatteryDescription", Category: info},
		{Keys: "Search+Ctrl+T", Command: "speakTimeAndDate", Category: info},
		{Keys: "Search+A v", Command: "announceVersion", Category: info},
		{Keys: "Ctrl+Space", Command: "stopSpeech", Description: "Stop speech", Category: info},

		// Options
		{Keys: "Search+Z", Command: "toggleStickyMode", Category: opts},
		{Keys: "Search+A e", Command: "toggleEarcons", Category: opts},
		{Keys: "Search+Ctrl+Z", Command: "toggleSpeechOnOrOff", Category: opts},
		{Keys: "Search+]", Command: "increaseTtsRate", Category: opts},
		{Keys: "Search+[", Command: "decreaseTtsRate", Category: opts},
		{Keys: "Search+Shift+]", Command: "increaseTtsPitch", Category: opts},
		{Keys: "Search+Shift+[", Command: "decreaseTtsPitch", Category: opts},
		{Keys: "Search+Alt+]", Command: "increaseTtsVolume", Category: opts},
		{Keys: "Search+Alt+[", Command: "decreaseTtsVolume", Category: opts},
		{Keys: "Search+O e", Command: "cycleTypingEcho", Category: opts},
		{Keys: "Search+O p", Command: "cyclePunctuationEcho", Category: opts},
		{Keys: "Search+A b", Command: "toggleBrailleCaptions", Category: opts},
		{Keys: "Search+A g", Command: "toggleBrailleTable", Category: opts},
		{Keys: "Search+O l", Command: "toggleLanguageSwitching", Category: opts},
		{Keys: "Search+O r", Command: "toggleReadOnlyEditing", Category: opts},
		{Keys: "Search+O o", Command: "showOptionsPage", Category: opts},
		{Keys: "Search+O k", Command: "showLearnModePage", Category: opts},
		{Keys: "Search+O w", Command: "showLogPage", Category: opts},
		{Keys: "Search+Escape", Command: "closeGuidedFlow", Category: opts},
	}
}
