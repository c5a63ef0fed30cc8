// Package models defines the domain entities of the shelf library.
//
// The package contains:
//   - [Item] : a lendable catalog entry tagged with a [Kind] (book, e-book, audiobook, magazine)
//   - [Lendable] : the capability set every item variant offers
//   - [Member] : a patron with an ordered collection of held items
//   - [Car] : the standalone car info exercise
//
// Item availability changes only through [Item.Borrow] and [Item.Return].
// The lending package is the only caller expected to drive those transitions.
package models
