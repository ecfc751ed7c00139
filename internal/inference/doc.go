// Package inference wraps the hosted model inference HTTP API.
//
// All four analysis stages run against pretrained models served remotely;
// this package knows how to call the two task shapes nazar needs
// (text classification and translation) and nothing about what the results
// mean. There is deliberately no retry logic: a stage failure abandons the
// comment and the batch runner moves on.
package inference
