// Package output renders range transitions and messages to speech, braille
// and earcons.
//
// The Renderer owns a Sink (the speech and braille engines of the host), a
// message catalog built with golang.org/x/text/message and the voice
// selector used for language switching. Callers build one Output per
// announcement:
//
//	r.New().
//		WithRichSpeechAndBraille(&rng, prev, output.EventNavigate).
//		WithSpeechProps(output.SpeechProps{Phonetic: true}).
//		Go()
//
// Nothing in this package fails. Missing voices fall back to the UI locale
// with a spoken notice; unknown message keys are spoken verbatim.
package output
