package cli

import (
	"context"

	"cafe-system/internal/models"
)

func (c *CLI) browseMenu(ctx context.Context) {
	itemType, err := c.readLine("Type to filter by (blank for the whole menu): ")
	if err != nil {
		return
	}

	var items []models.MenuItem
	if itemType == "" {
		items, err = c.catalog.ListAll(ctx)
	} else {
		items, err = c.catalog.ListByType(ctx, itemType)
	}
	if err != nil {
		c.printError(err)
		return
	}
	if len(items) == 0 {
		c.printf("No items found.\n")
		return
	}

	c.printItems(items)
}

func (c *CLI) searchItem(ctx context.Context) {
	name, err := c.readLine("Item name: ")
	if err != nil {
		return
	}

	item, err := c.catalog.GetItem(ctx, name)
	if err != nil {
		c.printError(err)
		return
	}

	c.printf("%s (%s) — $%.2f\n", item.Name, item.Type, item.Price)
	if item.Description != "" {
		c.printf("  %s\n", item.Description)
	}
	if item.ImageURL != "" {
		c.printf("  %s\n", item.ImageURL)
	}
}

func (c *CLI) printItems(items []models.MenuItem) {
	currentType := ""
	for _, item := range items {
		if item.Type != currentType {
			currentType = item.Type
			c.printf("%s:\n", currentType)
		}
		c.printf("  %-30s $%.2f\n", item.Name, item.Price)
	}
}
