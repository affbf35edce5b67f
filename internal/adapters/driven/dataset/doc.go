// Package dataset loads the reference ingredient lists used for classification.
//
// The lists ship inside the binary as ingredients_data.json. A file path can
// override the bundled copy; a missing override file yields an empty dataset,
// so every ingredient classifies as Unknown rather than failing the command.
package dataset
