// Package classifier turns OCR-recognised ingredient text into classified ingredients.
//
// The pipeline is rule based and runs in four steps:
//
//   - CleanText strips label headers, quantities, percentages, parenthetical
//     asides and filler phrases using an ordered pattern list
//   - Split breaks the cleaned text into candidate phrases on , . ; :
//   - Normalize case-folds a phrase, drops a trailing plural "s" and strips
//     descriptor words such as "organic" or "dried"
//   - Classify matches the normalised phrase against the reference lists in
//     the fixed order safe, harmful, conditional
//
// Engine ties the steps together. Everything here is pure and synchronous;
// malformed text never produces an error, at worst an empty or all-Unknown result.
package classifier
