package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/shelf/internal/models"
)

var _ list.Item = catalogItem{}

// catalogItem wraps [models.Item] to implement [list.Item].
type catalogItem struct {
	item   *models.Item
	holder string
}

func (i catalogItem) FilterValue() string { return i.item.Title() }
func (i catalogItem) Title() string       { return fmt.Sprintf("%d. %s", i.item.ID, i.item.Title()) }
func (i catalogItem) Description() string {
	status := "available"
	if !i.item.Available() {
		status = "borrowed"
		if i.holder != "" {
			status = fmt.Sprintf("borrowed by %s", i.holder)
		}
	}
	return fmt.Sprintf("%s • %s • %s", i.item.Kind, i.item.Creator(), status)
}
