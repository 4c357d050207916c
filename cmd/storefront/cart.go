package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/Olajosh80/Realms/internal/cart"
	"github.com/Olajosh80/Realms/internal/kv"
	"github.com/Olajosh80/Realms/pkg/config"
	"github.com/Olajosh80/Realms/pkg/logging"
)

// cartCommand works on the cart kept on this machine. It never talks to the
// server or the database.
func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "inspect and edit the local cart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", EnvVars: []string{"CART_DIR"}, Usage: "directory holding the cart file"},
			&cli.BoolFlag{Name: "verbose", Usage: "log cart storage events to stderr"},
		},
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "add one unit of an item",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name", Required: true},
					&cli.Float64Flag{Name: "price", Required: true},
					&cli.StringFlag{Name: "image"},
					&cli.StringFlag{Name: "slug"},
				},
				Action: withCart(func(c *cli.Context, s *cart.Store) error {
					s.AddItem(c.Context, cart.Item{
						ID:    c.String("id"),
						Name:  c.String("name"),
						Price: c.Float64("price"),
						Image: c.String("image"),
						Slug:  c.String("slug"),
					})
					return printCart(c, s)
				}),
			},
			{
				Name:      "remove",
				Usage:     "remove an item",
				ArgsUsage: "ID",
				Action: withCart(func(c *cli.Context, s *cart.Store) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: cart remove ID", 2)
					}
					s.RemoveItem(c.Context, c.Args().First())
					return printCart(c, s)
				}),
			},
			{
				Name:      "set",
				Usage:     "set the quantity of an item; 0 or less removes it",
				ArgsUsage: "ID QUANTITY",
				Action: withCart(func(c *cli.Context, s *cart.Store) error {
					if c.NArg() != 2 {
						return cli.Exit("usage: cart set ID QUANTITY", 2)
					}
					qty, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return cli.Exit(fmt.Sprintf("quantity %q is not a number", c.Args().Get(1)), 2)
					}
					s.UpdateQuantity(c.Context, c.Args().First(), qty)
					return printCart(c, s)
				}),
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: withCart(func(c *cli.Context, s *cart.Store) error {
					s.Clear(c.Context)
					return printCart(c, s)
				}),
			},
			{
				Name:   "show",
				Usage:  "print the cart",
				Action: withCart(printCart),
			},
		},
	}
}

func withCart(fn func(*cli.Context, *cart.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dir := c.String("dir")
		if dir == "" {
			dir = config.Load().CartDir
		}
		storage, err := kv.NewFile(dir)
		if err != nil {
			return err
		}

		logger := logging.Discard()
		if c.Bool("verbose") {
			logger = logging.NewWithWriter(c.App.ErrWriter, "debug")
		}

		s := cart.NewStore(storage, cart.StorageKey, logger)
		if err := s.Load(c.Context); err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		return fn(c, s)
	}
}

func printCart(c *cli.Context, s *cart.Store) error {
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY")
	for _, it := range s.Items() {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", it.ID, it.Name, it.Price, it.Quantity)
	}
	fmt.Fprintf(w, "\t\t%.2f\t%d\n", s.TotalPrice(), s.TotalItems())
	return w.Flush()
}
