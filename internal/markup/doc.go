// Package markup converts the problem editor's markdown dialect into CAPA
// problem XML. Conversion is a fixed, ordered pipeline of stages over typed
// line records; each stage only rewrites author lines that earlier stages
// left untouched, so generated markup is never matched twice.
package markup
