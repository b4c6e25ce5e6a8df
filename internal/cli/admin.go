package cli

import (
	"context"
	"strconv"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

func (c *CLI) profileMenu(ctx context.Context) {
	profile, err := c.accounts.GetProfile(ctx, c.sess, c.sess.Login)
	if err != nil {
		c.printError(err)
		return
	}
	c.printf("Login: %s\nRole: %s\nPhone: %s\nFavorites: %s\n",
		profile.Login, profile.Role, profile.Phone, profile.FavItems)

	c.printf(" 1. Change password\n")
	c.printf(" 2. Change favorite items\n")
	c.printf(" 9. Back\n")
	choice, err := c.readLine("> ")
	if err != nil {
		return
	}
	switch choice {
	case "1":
		c.changePassword(ctx, c.sess.Login, true)
	case "2":
		favItems, err := c.readLine("Favorite items: ")
		if err != nil {
			return
		}
		if err := c.accounts.ChangeFavorites(ctx, c.sess, c.sess.Login, favItems, logger.GenerateRequestID()); err != nil {
			c.printError(err)
			return
		}
		c.printf("Favorites updated.\n")
	case "9":
	default:
		c.printf("Unrecognized choice.\n")
	}
}

func (c *CLI) changePassword(ctx context.Context, login string, askCurrent bool) {
	var current string
	var err error
	if askCurrent {
		current, err = c.readLine("Current password: ")
		if err != nil {
			return
		}
	}
	newPassword, err := c.readLine("New password: ")
	if err != nil {
		return
	}

	if err := c.accounts.ChangePassword(ctx, c.sess, login, current, newPassword, logger.GenerateRequestID()); err != nil {
		c.printError(err)
		return
	}
	c.printf("Password changed.\n")
}

func (c *CLI) menuMaintenance(ctx context.Context) {
	c.printf(" 1. Add item\n")
	c.printf(" 2. Update item\n")
	c.printf(" 3. Remove item\n")
	c.printf(" 9. Back\n")
	choice, err := c.readLine("> ")
	if err != nil {
		return
	}
	switch choice {
	case "1":
		item, ok := c.readItem()
		if !ok {
			return
		}
		if err := c.catalog.AddItem(ctx, c.sess, item, logger.GenerateRequestID()); err != nil {
			c.printError(err)
			return
		}
		c.printf("Item added.\n")
	case "2":
		item, ok := c.readItem()
		if !ok {
			return
		}
		if err := c.catalog.UpdateItem(ctx, c.sess, item, logger.GenerateRequestID()); err != nil {
			c.printError(err)
			return
		}
		c.printf("Item updated.\n")
	case "3":
		name, err := c.readLine("Item name: ")
		if err != nil {
			return
		}
		if err := c.catalog.RemoveItem(ctx, c.sess, name, logger.GenerateRequestID()); err != nil {
			c.printError(err)
			return
		}
		c.printf("Item removed.\n")
	case "9":
	default:
		c.printf("Unrecognized choice.\n")
	}
}

func (c *CLI) readItem() (models.MenuItem, bool) {
	name, err := c.readLine("Name: ")
	if err != nil {
		return models.MenuItem{}, false
	}
	itemType, err := c.readLine("Type: ")
	if err != nil {
		return models.MenuItem{}, false
	}
	var price float64
	for {
		raw, err := c.readLine("Price: ")
		if err != nil {
			return models.MenuItem{}, false
		}
		price, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			c.printf("Please enter a number.\n")
			continue
		}
		break
	}
	description, err := c.readLine("Description (optional): ")
	if err != nil {
		return models.MenuItem{}, false
	}
	imageURL, err := c.readLine("Image URL (optional): ")
	if err != nil {
		return models.MenuItem{}, false
	}

	return models.MenuItem{
		Name:        name,
		Type:        itemType,
		Price:       price,
		Description: description,
		ImageURL:    imageURL,
	}, true
}

func (c *CLI) userManagement(ctx context.Context) {
	c.printf(" 1. View profile\n")
	c.printf(" 2. Change role\n")
	c.printf(" 3. Reset password\n")
	c.printf(" 4. Order history\n")
	c.printf(" 9. Back\n")
	choice, err := c.readLine("> ")
	if err != nil {
		return
	}
	switch choice {
	case "1":
		login, err := c.readLine("Login: ")
		if err != nil {
			return
		}
		profile, err := c.accounts.GetProfile(ctx, c.sess, login)
		if err != nil {
			c.printError(err)
			return
		}
		c.printf("Login: %s\nRole: %s\nPhone: %s\nFavorites: %s\n",
			profile.Login, profile.Role, profile.Phone, profile.FavItems)
	case "2":
		login, err := c.readLine("Login: ")
		if err != nil {
			return
		}
		raw, err := c.readLine("New role (customer/employee/manager): ")
		if err != nil {
			return
		}
		role, err := models.ParseRole(raw)
		if err != nil {
			c.printError(err)
			return
		}
		if err := c.accounts.ChangeRole(ctx, c.sess, login, role, logger.GenerateRequestID()); err != nil {
			c.printError(err)
			return
		}
		c.printf("Role updated.\n")
	case "3":
		login, err := c.readLine("Login: ")
		if err != nil {
			return
		}
		c.changePassword(ctx, login, false)
	case "4":
		login, err := c.readLine("Login: ")
		if err != nil {
			return
		}
		orders, err := c.orders.ListOrdersForUser(ctx, c.sess, login, recentOrderLimit)
		if err != nil {
			c.printError(err)
			return
		}
		if len(orders) == 0 {
			c.printf("No orders.\n")
			return
		}
		c.printOrders(orders)
	case "9":
	default:
		c.printf("Unrecognized choice.\n")
	}
}
