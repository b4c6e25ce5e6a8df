package cli

import (
	"context"
	"errors"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// orderState tracks where the order-building conversation is.
type orderState int

const (
	stateIdle orderState = iota
	stateBuilding
	stateFinalized
)

// placeOrder walks the user through building an order: the first item
// creates it, further items attach to it, and finishing prints the
// receipt.
func (c *CLI) placeOrder(ctx context.Context) {
	owner := c.sess.Login
	if c.sess.Role.IsStaff() {
		line, err := c.readLine("Customer login (blank for yourself): ")
		if err != nil {
			return
		}
		if line != "" {
			owner = line
		}
	}

	state := stateIdle
	var orderID int
	var total float64

	for state != stateFinalized {
		switch state {
		case stateIdle:
			item, err := c.readLine("First item: ")
			if err != nil {
				return
			}
			id, err := c.orders.PlaceOrder(ctx, c.sess, owner, item, logger.GenerateRequestID())
			if err != nil {
				c.printError(err)
				if errors.Is(err, models.ErrUnauthorized) {
					return
				}
				continue
			}
			orderID = id
			o, err := c.orders.GetOrder(ctx, c.sess, orderID)
			if err != nil {
				c.printError(err)
				return
			}
			total = o.Total
			state = stateBuilding
			c.printf("Order #%d opened. Running total: $%.2f\n", orderID, total)

		case stateBuilding:
			choice, err := c.readLine("[a]dd item, [c]omment a line, [f]inish: ")
			if err != nil {
				return
			}
			switch choice {
			case "a":
				item, err := c.readLine("Item: ")
				if err != nil {
					return
				}
				newTotal, err := c.orders.AddLine(ctx, c.sess, orderID, item, logger.GenerateRequestID())
				if err != nil {
					c.printError(err)
					continue
				}
				total = newTotal
				c.printf("Running total: $%.2f\n", total)
			case "c":
				c.commentLine(ctx, orderID)
			case "f":
				state = stateFinalized
			default:
				c.printf("Unrecognized choice.\n")
			}
		}
	}

	c.printf("Order #%d placed. Total: $%.2f\n", orderID, total)
	c.printLines(ctx, orderID)

	if c.sess.Role.IsStaff() {
		choice, err := c.readLine("Mark paid now? [y/N]: ")
		if err != nil {
			return
		}
		if choice == "y" || choice == "Y" {
			if err := c.orders.SetPaid(ctx, c.sess, orderID, true, logger.GenerateRequestID()); err != nil {
				c.printError(err)
				return
			}
			c.printf("Order #%d marked paid.\n", orderID)
		}
	}
}

func (c *CLI) recentOrders(ctx context.Context) {
	orders, err := c.orders.ListOrdersForUser(ctx, c.sess, c.sess.Login, recentOrderLimit)
	if err != nil {
		c.printError(err)
		return
	}
	if len(orders) == 0 {
		c.printf("No orders yet.\n")
		return
	}
	c.printOrders(orders)
}

func (c *CLI) orderDetails(ctx context.Context) {
	orderID, err := c.readInt("Order number: ")
	if err != nil {
		return
	}

	o, err := c.orders.GetOrder(ctx, c.sess, orderID)
	if err != nil {
		c.printError(err)
		return
	}

	paid := "unpaid"
	if o.Paid {
		paid = "paid"
	}
	c.printf("Order #%d for %s — %s, total $%.2f, placed %s\n",
		o.ID, o.Login, paid, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	c.printLines(ctx, orderID)
}

func (c *CLI) updateComment(ctx context.Context) {
	orderID, err := c.readInt("Order number: ")
	if err != nil {
		return
	}

	if !c.sess.Role.IsStaff() {
		lines, err := c.tracking.ListModifiableLines(ctx, c.sess, orderID)
		if err != nil {
			c.printError(err)
			return
		}
		if len(lines) == 0 {
			c.printf("No lines on this order can still be changed.\n")
			return
		}
		c.printf("Lines you can still change:\n")
		for _, line := range lines {
			c.printf("  %s\n", line.ItemName)
		}
	}

	c.commentLine(ctx, orderID)
}

func (c *CLI) commentLine(ctx context.Context, orderID int) {
	item, err := c.readLine("Item: ")
	if err != nil {
		return
	}
	text, err := c.readLine("Comment (blank clears it): ")
	if err != nil {
		return
	}

	if err := c.tracking.SetComment(ctx, c.sess, orderID, item, text, logger.GenerateRequestID()); err != nil {
		c.printError(err)
		return
	}
	c.printf("Comment saved.\n")
}

func (c *CLI) openOrders(ctx context.Context) {
	orders, err := c.orders.ListOpenOrders(ctx, c.sess, openOrderWindow)
	if err != nil {
		c.printError(err)
		return
	}
	if len(orders) == 0 {
		c.printf("No open orders in the last 24 hours.\n")
		return
	}
	c.printOrders(orders)
}

func (c *CLI) updateLineStatus(ctx context.Context) {
	orderID, err := c.readInt("Order number: ")
	if err != nil {
		return
	}
	item, err := c.readLine("Item: ")
	if err != nil {
		return
	}
	raw, err := c.readLine("New status (not_started/started/finished): ")
	if err != nil {
		return
	}

	status, err := models.ParseLineStatus(raw)
	if err != nil {
		c.printError(err)
		return
	}
	if err := c.tracking.SetStatus(ctx, c.sess, orderID, item, status, logger.GenerateRequestID()); err != nil {
		c.printError(err)
		return
	}
	c.printf("Status updated.\n")
}

func (c *CLI) markPaid(ctx context.Context) {
	orderID, err := c.readInt("Order number: ")
	if err != nil {
		return
	}
	choice, err := c.readLine("Mark as [p]aid or [u]npaid: ")
	if err != nil {
		return
	}

	var paid bool
	switch choice {
	case "p":
		paid = true
	case "u":
		paid = false
	default:
		c.printf("Unrecognized choice.\n")
		return
	}

	if err := c.orders.SetPaid(ctx, c.sess, orderID, paid, logger.GenerateRequestID()); err != nil {
		c.printError(err)
		return
	}
	c.printf("Order #%d updated.\n", orderID)
}

func (c *CLI) printOrders(orders []models.Order) {
	for _, o := range orders {
		paid := "unpaid"
		if o.Paid {
			paid = "paid"
		}
		c.printf("  #%-5d %-20s %-7s $%8.2f  %s\n",
			o.ID, o.Login, paid, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (c *CLI) printLines(ctx context.Context, orderID int) {
	lines, err := c.tracking.ListLines(ctx, c.sess, orderID)
	if err != nil {
		c.printError(err)
		return
	}
	for _, line := range lines {
		c.printf("  %-30s $%6.2f  %-12s", line.ItemName, line.Price, line.Status)
		if line.Comment != "" {
			c.printf("  %q", line.Comment)
		}
		c.printf("\n")
	}
}
