// Copyright 2025 The goodname Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the goodname server and CLI.

goodname finds dictionary words hidden in a description: every word that can
be spelled by picking letters of the description in order. Uppercase letters
of the description must be picked. Matches are ranked so that words built
from the first letters of the description's words come first, which makes
it a tool for naming projects after what they do.

# Usage

Run a single query:

	goodname -w words.txt -i "Character wise Double array Dictionary" -k 30

Allow up to two free letters in front of each match:

	goodname -w words.txt -i "abAaB" -p 2

Start the interactive prompt:

	goodname -w words.txt -c

Without -i or -c goodname starts the msgpack IPC server on stdin/stdout;
see package server for the protocol.

Word lists are plain text, one word per line, optionally compressed with
gzip (.gz) or zstd (.zst). Unless normalization is turned off, words are
lowercased, words with characters outside a-z are dropped, and the list is
sorted and deduplicated.

# Configuration

Defaults come from config.toml in the user config dir, created on first run:

	[search]
	default_prefix_len = 0
	default_top_k = 30

	[dict]
	word_list = "words.txt"
	normalize = true
	trie_cache = ""

	[server]
	cache_size = 256
	rate_limit = 200.0
	burst = 50

Flags override the file.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/goodname/internal/cli"
	"github.com/bastiangx/goodname/internal/logger"
	"github.com/bastiangx/goodname/internal/utils"
	"github.com/bastiangx/goodname/pkg/config"
	"github.com/bastiangx/goodname/pkg/dictionary"
	"github.com/bastiangx/goodname/pkg/server"
	"github.com/bastiangx/goodname/pkg/suggest"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "goodname"
)

func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the interactive prompt")
	configFile := flag.String("config", "", "Path to a config file")
	wordList := flag.String("w", "", "Word list file (.txt, .gz or .zst); default from config")
	text := flag.String("i", "", "Description to search, runs a single query")
	limit := flag.Int("k", 0, "Number of results to show; default from config")
	prefixLen := flag.Int("p", -1, "Free letters allowed in front of a match (0-3); default from config")
	normalize := flag.Bool("normalize", true, "Lowercase, filter, sort and dedupe the word list")
	trieCache := flag.String("trie-cache", "", "Read/write the built trie at this .dic path")
	buildTrie := flag.String("build-trie", "", "Build the trie of the word list into this .dic file and exit")

	flag.Parse()

	if *showVersion {
		fmt.Println(cli.Banner(Version))
		return
	}

	logger.Setup("", *debugMode)

	ctx := sigHandler()

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	set := setFlags()
	if !set["w"] {
		*wordList = appConfig.Dict.WordList
	}
	if !set["normalize"] {
		*normalize = appConfig.Dict.Normalize
	}
	if !set["trie-cache"] {
		*trieCache = appConfig.Dict.TrieCache
	}
	if !set["p"] {
		*prefixLen = appConfig.Search.DefaultPrefixLen
	}
	if !set["k"] {
		*limit = appConfig.CLI.DefaultLimit
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolvedList, err := pathResolver.ResolveWordList(*wordList)
	if err != nil {
		log.Fatalf("Word list %q not found in the working dir, next to the binary or in %s",
			*wordList, pathResolver.ConfigDir())
	}
	log.Debugf("Using word list at: %s", resolvedList)

	opts := dictionary.Options{Normalize: *normalize, TrieCache: *trieCache}

	if *buildTrie != "" {
		t, err := dictionary.BuildTrieFile(resolvedList, *buildTrie, opts)
		if err != nil {
			log.Fatalf("Failed to build trie: %v", err)
		}
		fmt.Printf("wrote %s (%s bytes)\n", *buildTrie, utils.FormatWithCommas(t.SizeInBytes()))
		return
	}

	lex, err := dictionary.LoadLexicon(resolvedList, opts)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Debugf("Dictionary ready: %s words, %s trie bytes",
		utils.FormatWithCommas(lex.Len()), utils.FormatWithCommas(lex.Trie().SizeInBytes()))

	if set["i"] {
		if err := cli.RunOnce(lex, appConfig, os.Stdout, *text, *prefixLen, *limit); err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		return
	}

	completer := suggest.NewCompleter(lex)

	if *cliMode {
		appConfig.Search.DefaultPrefixLen = *prefixLen
		appConfig.CLI.DefaultLimit = *limit
		inputHandler := cli.NewInputHandler(lex, completer, appConfig, configPath)
		if err := inputHandler.Start(Version); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(lex, completer, appConfig)
	showStartupInfo(resolvedList, lex.Len())

	if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Server error: %v", err)
	}
}

// sigHandler cancels the returned context on SIGINT/SIGTERM and exits,
// since the server may be blocked reading stdin.
func sigHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
	return ctx
}

// setFlags returns the names of flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(wordList string, words int) {
	l := logger.NewWithConfig(AppName, log.InfoLevel, false, false, log.TextFormatter)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("word list: ( %s, %s words )", wordList, utils.FormatWithCommas(words))
	l.Info("status: ready")
}
