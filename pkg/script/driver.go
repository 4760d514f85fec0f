// Package script runs the line oriented command language used to exercise graphs and
// the shortest path engine from text files.
//
//	CreateGraph g
//	AddNode g A
//	AddEdge g A B 5.0
//	ListNodes g
//	ListChildren g A
//	FindPath g A B
//
// Blank lines and lines starting with # are echoed. A failing command prints a single
// line and the remaining input is still processed.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/natevvv/campus-paths/pkg/graph"
	"github.com/natevvv/campus-paths/pkg/graph/path"
)

var (
	ErrBadArguments = errors.New("bad arguments")
	ErrUnknownGraph = errors.New("unknown graph")
)

type Driver struct {
	graphs map[string]*graph.Graph[string, float64]
	out    *bufio.Writer
}

func NewDriver(w io.Writer) *Driver {
	return &Driver{
		graphs: make(map[string]*graph.Graph[string, float64]),
		out:    bufio.NewWriter(w),
	}
}

// Run executes every line of r. Only reading or writing failures are returned.
func (d *Driver) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || line[0] == '#' {
			d.println(line)
		} else {
			fields := strings.Fields(line)
			d.execute(fields[0], fields[1:])
		}
		if err := d.out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (d *Driver) execute(command string, args []string) {
	var err error
	switch command {
	case "CreateGraph":
		err = d.createGraph(args)
	case "AddNode":
		err = d.addNode(args)
	case "AddEdge":
		err = d.addEdge(args)
	case "ListNodes":
		err = d.listNodes(args)
	case "ListChildren":
		err = d.listChildren(args)
	case "FindPath":
		err = d.findPath(args)
	default:
		d.println("Unrecognized command: " + command)
		return
	}
	if err != nil {
		d.println(fmt.Sprintf("error in %v: %v", strings.Join(append([]string{command}, args...), " "), err))
	}
}

func (d *Driver) println(line string) {
	d.out.WriteString(line)
	d.out.WriteByte('\n')
}

func checkArgs(command string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w to %v: want %d, got %d", ErrBadArguments, command, n, len(args))
	}
	return nil
}

func (d *Driver) graph(name string) (*graph.Graph[string, float64], error) {
	g, ok := d.graphs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownGraph, name)
	}
	return g, nil
}

func (d *Driver) createGraph(args []string) error {
	if err := checkArgs("CreateGraph", args, 1); err != nil {
		return err
	}
	d.graphs[args[0]] = graph.NewGraph[string, float64]()
	d.println("created graph " + args[0])
	return nil
}

func (d *Driver) addNode(args []string) error {
	if err := checkArgs("AddNode", args, 2); err != nil {
		return err
	}
	g, err := d.graph(args[0])
	if err != nil {
		return err
	}
	if err := g.AddNode(args[1]); err != nil {
		return err
	}
	d.println(fmt.Sprintf("added node %v to %v", args[1], args[0]))
	return nil
}

func (d *Driver) addEdge(args []string) error {
	if err := checkArgs("AddEdge", args, 4); err != nil {
		return err
	}
	g, err := d.graph(args[0])
	if err != nil {
		return err
	}
	weight, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("%w: weight %q is not a number", ErrBadArguments, args[3])
	}
	if err := g.AddEdge(args[1], args[2], weight); err != nil {
		return err
	}
	d.println(fmt.Sprintf("added edge %v from %v to %v in %v", formatDouble(weight), args[1], args[2], args[0]))
	return nil
}

func (d *Driver) listNodes(args []string) error {
	if err := checkArgs("ListNodes", args, 1); err != nil {
		return err
	}
	g, err := d.graph(args[0])
	if err != nil {
		return err
	}
	nodes := g.Nodes()
	sort.Strings(nodes)

	var sb strings.Builder
	sb.WriteString(args[0] + " contains:")
	for _, n := range nodes {
		sb.WriteString(" " + n)
	}
	d.println(sb.String())
	return nil
}

func (d *Driver) listChildren(args []string) error {
	if err := checkArgs("ListChildren", args, 2); err != nil {
		return err
	}
	g, err := d.graph(args[0])
	if err != nil {
		return err
	}
	edges, err := g.EdgesFrom(args[1])
	if err != nil {
		return err
	}
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].To != edges[j].To {
			return edges[i].To < edges[j].To
		}
		return edges[i].Weight < edges[j].Weight
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("the children of %v in %v are:", args[1], args[0]))
	for _, e := range edges {
		sb.WriteString(fmt.Sprintf(" %v(%.3f)", e.To, e.Weight))
	}
	d.println(sb.String())
	return nil
}

func (d *Driver) findPath(args []string) error {
	if err := checkArgs("FindPath", args, 3); err != nil {
		return err
	}
	g, err := d.graph(args[0])
	if err != nil {
		return err
	}
	origin, destination := args[1], args[2]

	// unknown endpoints are reported whether or not a path would exist
	if !g.ContainsNode(origin) || !g.ContainsNode(destination) {
		if !g.ContainsNode(origin) {
			d.println("unknown: " + origin)
		}
		if !g.ContainsNode(destination) {
			d.println("unknown: " + destination)
		}
		return nil
	}

	p, found, err := path.ShortestPath(g, origin, destination)
	if err != nil {
		return err
	}
	d.println(fmt.Sprintf("path from %v to %v:", origin, destination))
	if !found {
		d.println("no path found")
		return nil
	}
	for _, s := range p.Segments() {
		d.println(fmt.Sprintf("%v to %v with weight %.3f", s.Start, s.End, s.Cost))
	}
	d.println(fmt.Sprintf("total cost: %.3f", p.Cost()))
	return nil
}

// formatDouble prints f the way Java's Double.toString does: at least one fraction
// digit, and computerized scientific notation outside of [1e-3, 1e7).
func formatDouble(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsAny(s, ".") {
			s += ".0"
		}
		return s
	}

	// 1.5E+07 -> 1.5E7, 1E-04 -> 1.0E-4
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exponent, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp, _ := strconv.Atoi(exponent)
	return mantissa + "E" + strconv.Itoa(exp)
}
