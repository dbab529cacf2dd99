// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	seed    string
	chain   string
	spacing time.Duration
	logDir  string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	defaultConnect = "127.0.0.1:2130"
	defaultSpacing = 200 * time.Millisecond
	environment    = ".env"
)

func main() {

	// the environment must be complete before flags are parsed
	if err := loadEnvironment(environment); nil != err {
		fmt.Fprintf(os.Stderr, "environment: %s\n", err)
		os.Exit(1)
	}

	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	stopLogging()
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// values already in the environment take precedence over the file
func loadEnvironment(fileName string) error {
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(fileName)
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "tellit-cli"
	app.Usage = "exchange short notes through a tellitd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " tellitd host/IP and port, `HOST:PORT`",
			EnvVar: "TELLIT_CONNECT",
		},
		cli.StringFlag{
			Name:   "seed, s",
			Value:  "",
			Usage:  " identity `SEED` that signs operations",
			EnvVar: "TELLIT_SEED",
		},
		cli.StringFlag{
			Name:   "chain, n",
			Value:  "",
			Usage:  " refuse a node not on `CHAIN` [live|testing|local]",
			EnvVar: "TELLIT_CHAIN",
		},
		cli.DurationFlag{
			Name:   "spacing",
			Value:  defaultSpacing,
			Usage:  " minimum `DURATION` between requests to the node",
			EnvVar: "TELLIT_SPACING",
		},
		cli.StringFlag{
			Name:   "log-directory",
			Value:  "",
			Usage:  " write a log to `DIR` (none by default)",
			EnvVar: "TELLIT_LOG_DIRECTORY",
		},
	}

	noteFlag := cli.StringFlag{
		Name:  "note, m",
		Value: "",
		Usage: "*note `ADDRESS`",
	}
	kindFlag := cli.StringFlag{
		Name:  "kind, k",
		Value: "",
		Usage: "*reaction `KIND` [like|dislike]",
	}

	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new identity seed and key pair",
			ArgsUsage: "\n   (* = required)",
			Action:    runGenerate,
		},
		{
			Name:      "info",
			Usage:     "display node status",
			ArgsUsage: "\n   (* = required)",
			Action:    runInfo,
		},
		{
			Name:      "init",
			Usage:     "create the ledger configuration, succeeds if already created",
			ArgsUsage: "\n   (* = required)",
			Action:    runInit,
		},
		{
			Name:      "send",
			Usage:     "send a note to another identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving identity `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*note title `STRING`",
				},
				cli.StringFlag{
					Name:  "body, b",
					Value: "",
					Usage: "*note body `STRING`",
				},
			},
			Action: runSend,
		},
		{
			Name:      "address",
			Usage:     "display the addresses a note would occupy",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "author, a",
					Value: "",
					Usage: " author `ACCOUNT` [default: own identity]",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving identity `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "title, t",
					Value: "",
					Usage: "*note title `STRING`",
				},
				cli.StringFlag{
					Name:  "body, b",
					Value: "",
					Usage: "*note body `STRING`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "inbox",
			Usage:     "list notes received, newest first",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: " receiving identity `ACCOUNT` [default: own identity]",
				},
			},
			Action: runInbox,
		},
		{
			Name:      "react",
			Usage:     "like or dislike a note",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{noteFlag, kindFlag},
			Action:    runReact,
		},
		{
			Name:      "change",
			Usage:     "change an existing reaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{noteFlag, kindFlag},
			Action:    runChange,
		},
		{
			Name:      "unreact",
			Usage:     "remove a reaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{noteFlag},
			Action:    runUnreact,
		},
		{
			Name:      "delete",
			Usage:     "delete a sent or received note, refunding its deposit",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{noteFlag},
			Action:    runDelete,
		},
		{
			Name:      "airdrop",
			Usage:     "credit own balance on a test chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*`AMOUNT` to credit",
				},
			},
			Action: runAirdrop,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " identity `ACCOUNT` [default: own identity]",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "version",
			Usage:     "display tellit-cli version",
			ArgsUsage: "\n   (* = required)",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			seed:    c.GlobalString("seed"),
			chain:   c.GlobalString("chain"),
			spacing: c.GlobalDuration("spacing"),
			logDir:  c.GlobalString("log-directory"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
