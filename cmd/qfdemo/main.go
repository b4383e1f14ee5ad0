// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

// Command qfdemo is a small interactive driver over a quotient
// filter, built for one process lifetime: it does not round-trip the
// filter through a file, since persistence is outside the core
// engine's scope. It does exercise the canonical serialization form
// via an in-memory buffer, to show how a host would wire it up.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	murmur "github.com/aviddiviner/go-murmur"
	"github.com/urfave/cli/v2"

	qf "github.com/brisling-labs/quotientfilter"
	"github.com/brisling-labs/quotientfilter/internal/persist"
)

func hashKey(key string) uint64 {
	return murmur.MurmurHash64A([]byte(key), 0)
}

func main() {
	filter := qf.New(16, 8)

	app := &cli.App{
		Name:  "qfdemo",
		Usage: "drive an in-memory quotient filter from the command line",
		Commands: []*cli.Command{
			{
				Name:      "insert",
				Usage:     "insert keys read one per line from stdin or --input",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}},
				},
				Action: func(c *cli.Context) error {
					reader := os.Stdin
					if p := c.String("input"); p != "" {
						f, err := os.Open(p)
						if err != nil {
							return err
						}
						defer f.Close()
						reader = f
					}
					sc := bufio.NewScanner(reader)
					n := 0
					for sc.Scan() {
						key := strings.TrimSpace(sc.Text())
						if key == "" {
							continue
						}
						h := qf.MaskHash(hashKey(key), 16, 8)
						if !filter.Insert(h) {
							log.Printf("filter is full, dropping %q", key)
							break
						}
						n++
					}
					log.Printf("inserted %d keys, %d entries now stored", n, filter.Entries())
					return sc.Err()
				},
			},
			{
				Name:      "query",
				Usage:     "report whether a key is possibly present",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("query: expected exactly one key argument")
					}
					key := c.Args().Get(0)
					h := qf.MaskHash(hashKey(key), 16, 8)
					fmt.Printf("may_contain(%q) = %t\n", key, filter.MayContain(h))
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a key",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("remove: expected exactly one key argument")
					}
					key := c.Args().Get(0)
					h := qf.MaskHash(hashKey(key), 16, 8)
					fmt.Printf("remove(%q) = %t\n", key, filter.Remove(h))
					return nil
				},
			},
			{
				Name:  "stats",
				Usage: "dump bucket-level stats and a header round trip",
				Action: func(c *cli.Context) error {
					filter.DebugDump(os.Stdout)
					fmt.Printf("false-positive rate estimate: %0.5f\n", filter.FalsePositiveRate())

					var buf bytes.Buffer
					h := persist.Header{QBits: 16, RBits: 8, Entries: filter.Entries()}
					if _, err := persist.WriteHeader(&buf, h, filter.RawWords()); err != nil {
						return err
					}
					got, words, err := persist.ReadHeader(&buf)
					if err != nil {
						return err
					}
					restored, err := qf.Restore(uint(got.QBits), uint(got.RBits), got.Entries, words, nil)
					if err != nil {
						return err
					}
					fmt.Printf("round-tripped header: q=%d r=%d entries=%d (restored.Entries()=%d)\n",
						got.QBits, got.RBits, got.Entries, restored.Entries())
					return nil
				},
			},
			{
				Name:  "size",
				Usage: "report the table size for given q and r bits",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("size: usage: size <q> <r>")
					}
					q, err := strconv.Atoi(c.Args().Get(0))
					if err != nil {
						return err
					}
					r, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return err
					}
					fmt.Printf("%d bytes\n", qf.TableSize(uint(q), uint(r)))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
