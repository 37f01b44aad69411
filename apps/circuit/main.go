//
// main.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"

	"github.com/markkurossi/pa2pc/circuit"
)

func main() {
	adder := flag.Int("adder", 0, "Generate bits-bit adder circuit")
	sub := flag.Int("sub", 0, "Generate bits-bit subtractor circuit")
	out := flag.String("o", "", "Output file for Bristol-Fashion circuit")
	dot := flag.Bool("dot", false, "Print graphviz dot output")
	dump := flag.Bool("dump", false, "Dump circuit gates")
	stats := flag.Bool("stats", false, "Print circuit statistics")
	flag.Parse()

	log.SetFlags(0)

	var circs []*circuit.Circuit

	if *adder > 0 {
		c, err := circuit.NewAdder(*adder)
		if err != nil {
			log.Fatal(err)
		}
		circs = append(circs, c)
	}
	if *sub > 0 {
		c, err := circuit.NewSubtractor(*sub)
		if err != nil {
			log.Fatal(err)
		}
		circs = append(circs, c)
	}
	var values []*big.Int
	for _, arg := range flag.Args() {
		v, ok := new(big.Int).SetString(arg, 0)
		if ok {
			values = append(values, v)
			continue
		}
		c, err := circuit.Parse(arg)
		if err != nil {
			log.Fatal(err)
		}
		circs = append(circs, c)
	}
	if len(circs) == 0 {
		fmt.Printf("no circuits specified\n")
		os.Exit(1)
	}

	for _, c := range circs {
		fmt.Fprintf(os.Stderr, "circuit: %v\n", c)
		if *stats {
			c.TabulateStats(os.Stdout)
		}
		if *dump {
			c.Dump()
		}
		if *dot {
			c.Dot(os.Stdout)
		}
		if len(*out) > 0 {
			f, err := os.Create(*out)
			if err != nil {
				log.Fatal(err)
			}
			err = c.MarshalBristol(f)
			f.Close()
			if err != nil {
				log.Fatal(err)
			}
		}
		if len(values) > 0 {
			if err := compute(c, values); err != nil {
				log.Fatal(err)
			}
		}
	}
}

func compute(c *circuit.Circuit, values []*big.Int) error {
	if len(values) != len(c.Inputs) {
		return fmt.Errorf("got %d values, circuit has %d inputs",
			len(values), len(c.Inputs))
	}
	var inputs []bool
	for idx, arg := range c.Inputs {
		inputs = append(inputs, circuit.BigToBits(values[idx], arg.Size)...)
	}
	result, err := c.Compute(inputs)
	if err != nil {
		return err
	}
	for idx, v := range c.Outputs.Split(result) {
		fmt.Printf("Result[%d]: %v\n", idx, v)
	}
	return nil
}
