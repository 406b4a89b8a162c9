// Package main provides the Loom data-preparation CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/loom-ml/loom/config"
	"github.com/loom-ml/loom/corpus"
	"github.com/loom-ml/loom/vocab"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Loom %s\n", version)
	case "vocab":
		runVocab(os.Args[2:])
	case "stats":
		runStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Loom - sequence-to-sequence data preparation")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  vocab      Build a vocabulary from a corpus file")
	fmt.Println("  stats      Load a data config and print corpus statistics")
}

func runVocab(args []string) {
	fs := flag.NewFlagSet("vocab", flag.ExitOnError)
	in := fs.String("in", "", "corpus file to count tokens from")
	out := fs.String("out", "", "vocabulary output file")
	level := fs.String("level", "word", "tokenization level: word, char or bpe")
	lowercase := fs.Bool("lowercase", false, "lowercase before tokenizing")
	maxSize := fs.Int("max", -1, "vocabulary size limit (-1 = unbounded)")
	minFreq := fs.Int("min", -1, "minimum token frequency (-1 = disabled)")
	fs.Parse(args)

	if *in == "" || *out == "" {
		log.Fatal("vocab: -in and -out are required")
	}

	tok, err := corpus.NewTokenizer(corpus.Level(*level), *lowercase)
	if err != nil {
		log.Fatal(err)
	}
	ds, err := corpus.LoadMono(*in, tok)
	if err != nil {
		log.Fatal(err)
	}
	v, err := vocab.Build(ds.SrcTokens(), *maxSize, *minFreq)
	if err != nil {
		log.Fatal(err)
	}
	if err := v.Save(*out); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d tokens to %s", v.Len(), *out)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	cfgPath := fs.String("config", "", "YAML data configuration")
	fs.Parse(args)

	if *cfgPath == "" {
		log.Fatal("stats: -config is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	for _, line := range cfg.Describe("cfg") {
		log.Print(line)
	}

	data, err := config.LoadData(cfg)
	if err != nil {
		log.Fatal(err)
	}
	for _, line := range corpus.DataInfo(data.Train, data.Dev, data.Test, data.SrcVocab, data.TrgVocab) {
		log.Print(line)
	}
}
