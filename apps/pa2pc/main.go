//
// main.go
//
// Copyright (c) 2026 Markku Rossi
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
	"runtime"

	"github.com/markkurossi/pa2pc/circuit"
	"github.com/markkurossi/pa2pc/env"
	"github.com/markkurossi/pa2pc/pa2pc"
)

func main() {
	tau := flag.Int("tau", 8, "Vector commitment depth")
	kappa := flag.Int("kappa", 16, "Soundness repetitions")
	bs := flag.Int("bs", 3, "Triples per AND gate check")
	rm := flag.Int("rm", 64, "Opened leftover triples")
	not := flag.String("not", "flip-mask", "NOT convention: flip-mask, flip-value")
	adder := flag.Int("adder", 0, "Use bits-bit adder circuit")
	sub := flag.Int("sub", 0, "Use bits-bit subtractor circuit")
	inputA := flag.String("a", "0", "PA input value")
	inputB := flag.String("b", "0", "PB input value")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of workers")
	verbose := flag.Bool("v", false, "Verbose output")
	timing := flag.Bool("timing", false, "Print timing statistics")
	flag.Parse()

	log.SetFlags(0)

	circ, err := loadCircuit(*adder, *sub, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	conv, err := pa2pc.ParseNOTConvention(*not)
	if err != nil {
		log.Fatal(err)
	}
	params, err := pa2pc.NewParams(circ, *tau, *kappa, *bs, *rm, conv)
	if err != nil {
		log.Fatal(err)
	}
	config := &env.Config{
		Workers: *workers,
		Verbose: *verbose,
	}
	if *verbose {
		fmt.Printf("circuit: %v\n", circ)
		fmt.Printf("params : %v\n", params)
	}

	a, err := parseInput(*inputA, len(params.InputsA))
	if err != nil {
		log.Fatalf("PA input: %v", err)
	}
	b, err := parseInput(*inputB, len(params.InputsB))
	if err != nil {
		log.Fatalf("PB input: %v", err)
	}

	err = prove(config, params, a, b, *timing)
	if err != nil {
		log.Fatal(err)
	}
}

func loadCircuit(adder, sub int, args []string) (*circuit.Circuit, error) {
	switch {
	case adder > 0:
		return circuit.NewAdder(adder)
	case sub > 0:
		return circuit.NewSubtractor(sub)
	case len(args) == 1:
		return circuit.Parse(args[0])
	default:
		return nil, fmt.Errorf("no circuit specified")
	}
}

func parseInput(val string, bits int) ([]bool, error) {
	v, ok := new(big.Int).SetString(val, 0)
	if !ok {
		return nil, fmt.Errorf("invalid input: %s", val)
	}
	if v.Sign() < 0 || v.BitLen() > bits {
		return nil, fmt.Errorf("input %s does not fit in %d bits", val, bits)
	}
	return circuit.BigToBits(v, bits), nil
}

func prove(config *env.Config, params *pa2pc.Params, a, b []bool,
	timing bool) error {

	prover, err := pa2pc.NewProver(config, params, nil)
	if err != nil {
		return err
	}
	prover.Timing = circuit.NewTiming()

	pre, err := prover.Preprocess()
	if err != nil {
		return err
	}
	proof, err := prover.Prove(a, b)
	if err != nil {
		return err
	}

	preData, err := pre.MarshalBinary()
	if err != nil {
		return err
	}
	proofData, err := proof.MarshalBinary()
	if err != nil {
		return err
	}

	// Verify the decoded transcripts.
	pre = new(pa2pc.Preprocessing)
	if err := pre.UnmarshalBinary(preData); err != nil {
		return err
	}
	proof = new(pa2pc.Proof)
	if err := proof.UnmarshalBinary(proofData); err != nil {
		return err
	}

	verifier := pa2pc.NewVerifier(config, params)
	verifier.Timing = circuit.NewTiming()

	result, err := verifier.Verify(pre, proof)
	if err != nil {
		return err
	}
	for idx, v := range params.Circuit.Outputs.Split(result) {
		fmt.Printf("Result[%d]: %v\n", idx, v)
	}

	if timing {
		sizes := []circuit.Size{
			{
				Label: "Prep",
				Bytes: uint64(len(preData)),
			},
			{
				Label: "Proof",
				Bytes: uint64(len(proofData)),
			},
		}
		fmt.Println("Prover:")
		prover.Timing.Print(os.Stdout, sizes...)
		fmt.Println("Verifier:")
		verifier.Timing.Print(os.Stdout)
	}
	return nil
}
