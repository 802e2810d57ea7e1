// Package settings provides handlers for state-only commands.
//
// These commands change preferences or announce information that does not
// depend on where the user is in the document:
//   - toggleStickyMode, toggleEarcons, toggleSpeechOnOrOff
//   - increase/decrease TTS rate, pitch and volume
//   - cycleTypingEcho, cyclePunctuationEcho, toggleBrailleTable
//   - toggleBrailleCaptions, toggleLanguageSwitching, toggleReadOnlyEditing
//   - showOptionsPage, showLearnModePage, showLogPage
//   - announceBatteryDescription, speakTimeAndDate, announceVersion
//   - stopSpeech, closeGuidedFlow
//
// None of the handlers read the current range.
//
// # Usage
//
//	registry.RegisterSet(settings.New())
package settings
