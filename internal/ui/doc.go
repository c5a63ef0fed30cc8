// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a lending desk for a single member:
//  1. [CatalogView] : Browse every catalogued item and its status
//  2. [HeldView] : The member's held items, oldest first
//
// Borrowing and returning run synchronously inside [Model.Update] against the [lending.Ledger].
// Lending failures are shown in a status line rather than ending the program.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, b, r, o, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
