// Package analysis runs the four-stage comment analysis pipeline and the
// batch runner that walks a channel's corpus.
//
// The stages are: Persian sentiment classification, Persian-to-English
// translation, English emotion classification, and irony detection. The two
// English stages only run when translation produced text. Inference happens
// strictly one comment at a time; the skip check is consulted before any
// model is called, and a stage failure abandons that comment without
// stopping the batch.
package analysis
