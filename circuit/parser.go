//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
)

var (
	reParts = regexp.MustCompilePOSIX("[[:space:]]+")

	// ErrFormat is returned for malformed circuit files.
	ErrFormat = errors.New("circuit: invalid format")
)

// Parse parses the Bristol-Fashion circuit file.
func Parse(file string) (*Circuit, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseBristol(f)
}

// ParseBristol parses the Bristol-Fashion circuit from the reader.
func ParseBristol(in io.Reader) (*Circuit, error) {
	r := bufio.NewReader(in)

	// NumGates NumWires
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if len(line) != 2 {
		return nil, fmt.Errorf("%w: invalid 1st line: %v", ErrFormat, line)
	}
	numGates, err := parseCount(line[0])
	if err != nil {
		return nil, err
	}
	numWires, err := parseCount(line[1])
	if err != nil {
		return nil, err
	}

	// NumInputs InputSize...
	inputs, err := parseIO(r)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	// NumOutputs OutputSize...
	outputs, err := parseIO(r)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	if inputs.Size()+outputs.Size() > numWires {
		return nil, fmt.Errorf("%w: %d input and %d output bits, %d wires",
			ErrFormat, inputs.Size(), outputs.Size(), numWires)
	}

	defined := make([]bool, numWires)
	for i := 0; i < inputs.Size(); i++ {
		defined[i] = true
	}

	var stats Stats
	gates := make([]Gate, 0, numGates)

	for {
		line, err = readLine(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if len(line) < 3 {
			return nil, fmt.Errorf("%w: invalid gate: %v", ErrFormat, line)
		}
		n1, err := parseCount(line[0])
		if err != nil {
			return nil, err
		}
		n2, err := parseCount(line[1])
		if err != nil {
			return nil, err
		}
		if 2+n1+n2+1 != len(line) || n2 != 1 {
			return nil, fmt.Errorf("%w: invalid gate: %v", ErrFormat, line)
		}

		var wires []Wire
		for i := 0; i < n1+n2; i++ {
			v, err := parseCount(line[2+i])
			if err != nil {
				return nil, err
			}
			if v >= numWires {
				return nil, fmt.Errorf("%w: gate %d: wire %d out of range",
					ErrFormat, len(gates), v)
			}
			wires = append(wires, Wire(v))
		}
		for i := 0; i < n1; i++ {
			if !defined[wires[i]] {
				return nil, fmt.Errorf("%w: gate %d: wire %d used before set",
					ErrFormat, len(gates), wires[i])
			}
		}
		output := wires[n1]
		if defined[output] {
			return nil, fmt.Errorf("%w: gate %d: wire %d set twice",
				ErrFormat, len(gates), output)
		}
		defined[output] = true

		var op Operation
		var expected int
		switch line[len(line)-1] {
		case "XOR":
			op = XOR
			expected = 2
		case "AND":
			op = AND
			expected = 2
		case "INV":
			op = INV
			expected = 1
		default:
			return nil, fmt.Errorf("%w: invalid operation '%s'",
				ErrFormat, line[len(line)-1])
		}
		if n1 != expected {
			return nil, fmt.Errorf("%w: %s gate with %d inputs",
				ErrFormat, op, n1)
		}

		gate := Gate{
			Input0: wires[0],
			Output: output,
			Op:     op,
		}
		if n1 == 2 {
			gate.Input1 = wires[1]
		}
		gates = append(gates, gate)
		stats[op]++
	}
	if len(gates) != numGates {
		return nil, fmt.Errorf("%w: got %d gates, expected %d",
			ErrFormat, len(gates), numGates)
	}
	for i := numWires - outputs.Size(); i < numWires; i++ {
		if !defined[i] {
			return nil, fmt.Errorf("%w: output wire %d not set", ErrFormat, i)
		}
	}

	return &Circuit{
		NumGates: numGates,
		NumWires: numWires,
		Inputs:   inputs,
		Outputs:  outputs,
		Gates:    gates,
		Stats:    stats,
	}, nil
}

func parseIO(r *bufio.Reader) (IO, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	count, err := parseCount(line[0])
	if err != nil {
		return nil, err
	}
	if len(line) != count+1 {
		return nil, fmt.Errorf("%w: invalid I/O line: %v", ErrFormat, line)
	}
	var result IO
	for i := 0; i < count; i++ {
		size, err := parseCount(line[1+i])
		if err != nil {
			return nil, err
		}
		result = append(result, IOArg{
			Name: fmt.Sprintf("v%d", i),
			Size: size,
		})
	}
	return result, nil
}

func parseCount(val string) (int, error) {
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrFormat, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrFormat, v)
	}
	return v, nil
}

func readLine(r *bufio.Reader) ([]string, error) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, err
		}
		parts := reParts.Split(line, -1)
		var result []string
		for _, part := range parts {
			if len(part) > 0 {
				result = append(result, part)
			}
		}
		if len(result) > 0 {
			return result, nil
		}
		if err == io.EOF {
			return nil, err
		}
	}
}
