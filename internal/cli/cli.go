// Package cli is the interactive counter terminal. It owns all
// prompting and printing; the services behind it return typed errors
// and never talk to the console.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

const (
	recentOrderLimit = 5
	openOrderWindow  = 24 * time.Hour
)

// CLI drives the interactive session.
type CLI struct {
	accounts Accounts
	catalog  Catalog
	orders   Orders
	tracking Tracking
	logger   *logger.Logger

	in  *bufio.Scanner
	out io.Writer

	sess  models.Session
	token string
}

// New creates a CLI reading from in and writing to out.
func New(accounts Accounts, catalog Catalog, orders Orders, tracking Tracking, log *logger.Logger, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		accounts: accounts,
		catalog:  catalog,
		orders:   orders,
		tracking: tracking,
		logger:   log,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops over the menus until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) error {
	c.printf("Welcome to the cafe terminal.\n")
	for {
		var done bool
		var err error
		if c.token == "" {
			done, err = c.authMenu(ctx)
		} else {
			done, err = c.roleMenu(ctx)
		}
		if err != nil {
			return err
		}
		if done {
			if c.token != "" {
				c.logout(ctx)
			}
			c.printf("Goodbye.\n")
			return nil
		}
	}
}

func (c *CLI) authMenu(ctx context.Context) (bool, error) {
	c.printf("\nMAIN MENU\n")
	c.printf(" 1. Log in\n")
	c.printf(" 2. Sign up\n")
	c.printf(" 9. Exit\n")

	choice, err := c.readLine("> ")
	if err != nil {
		return true, nil
	}
	switch choice {
	case "1":
		c.login(ctx)
	case "2":
		c.signup(ctx)
	case "9":
		return true, nil
	default:
		c.printf("Unrecognized choice.\n")
	}
	return false, nil
}

func (c *CLI) roleMenu(ctx context.Context) (bool, error) {
	c.printf("\n%s MENU (%s)\n", strings.ToUpper(string(c.sess.Role)), c.sess.Login)
	c.printf(" 1. Browse menu\n")
	c.printf(" 2. Search for an item\n")
	c.printf(" 3. Place an order\n")
	c.printf(" 4. My recent orders\n")
	c.printf(" 5. Order details\n")
	c.printf(" 6. Update a line comment\n")
	c.printf(" 7. My profile\n")
	if c.sess.Role.IsStaff() {
		c.printf("10. Open orders (last 24h)\n")
		c.printf("11. Update a line status\n")
		c.printf("12. Mark order paid/unpaid\n")
	}
	if c.sess.Role == models.RoleManager {
		c.printf("20. Menu maintenance\n")
		c.printf("21. User management\n")
	}
	c.printf(" 8. Log out\n")
	c.printf(" 9. Exit\n")

	choice, err := c.readLine("> ")
	if err != nil {
		return true, nil
	}
	switch choice {
	case "1":
		c.browseMenu(ctx)
	case "2":
		c.searchItem(ctx)
	case "3":
		c.placeOrder(ctx)
	case "4":
		c.recentOrders(ctx)
	case "5":
		c.orderDetails(ctx)
	case "6":
		c.updateComment(ctx)
	case "7":
		c.profileMenu(ctx)
	case "8":
		c.logout(ctx)
	case "9":
		return true, nil
	case "10", "11", "12":
		if !c.sess.Role.IsStaff() {
			c.printf("Unrecognized choice.\n")
			break
		}
		switch choice {
		case "10":
			c.openOrders(ctx)
		case "11":
			c.updateLineStatus(ctx)
		case "12":
			c.markPaid(ctx)
		}
	case "20":
		if c.sess.Role != models.RoleManager {
			c.printf("Unrecognized choice.\n")
			break
		}
		c.menuMaintenance(ctx)
	case "21":
		if c.sess.Role != models.RoleManager {
			c.printf("Unrecognized choice.\n")
			break
		}
		c.userManagement(ctx)
	default:
		c.printf("Unrecognized choice.\n")
	}
	return false, nil
}

func (c *CLI) login(ctx context.Context) {
	login, err := c.readLine("Login: ")
	if err != nil {
		return
	}
	password, err := c.readLine("Password: ")
	if err != nil {
		return
	}

	sess, token, err := c.accounts.Login(ctx, login, password, logger.GenerateRequestID())
	if err != nil {
		c.printError(err)
		return
	}
	c.sess = sess
	c.token = token
	c.printf("Logged in as %s (%s).\n", sess.Login, sess.Role)
}

func (c *CLI) signup(ctx context.Context) {
	login, err := c.readLine("Choose a login: ")
	if err != nil {
		return
	}
	password, err := c.readLine("Choose a password: ")
	if err != nil {
		return
	}
	phone, err := c.readLine("Phone (optional): ")
	if err != nil {
		return
	}

	if err := c.accounts.Register(ctx, login, password, phone, logger.GenerateRequestID()); err != nil {
		c.printError(err)
		return
	}
	c.printf("Account created. You can log in now.\n")
}

func (c *CLI) logout(ctx context.Context) {
	if c.token == "" {
		return
	}
	if err := c.accounts.Logout(ctx, c.token); err != nil {
		c.printError(err)
	}
	c.sess = models.Session{}
	c.token = ""
	c.printf("Logged out.\n")
}

// readLine prompts and reads one trimmed line. io.EOF ends the
// session.
func (c *CLI) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readInt prompts until it gets a number or the input ends.
func (c *CLI) readInt(prompt string) (int, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			c.printf("Please enter a number.\n")
			continue
		}
		return n, nil
	}
}

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// printError renders a service error in user terms.
func (c *CLI) printError(err error) {
	c.printf("Error: %v\n", err)
}
