package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/paulmach/orb"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/logging"
	"github.com/natevvv/campus-paths/pkg/campus"
	p "github.com/natevvv/campus-paths/pkg/graph/path"
	"github.com/natevvv/campus-paths/pkg/routing"
	"github.com/natevvv/campus-paths/pkg/slice"
)

// origin id, destination id, reference length (-1 if unreachable), #hops
type target struct {
	origin      int
	destination int
	length      float64
	hops        int
}

func main() {
	cfgPath := flag.String("config", "", "Config file naming the campus data, defaults are used if empty")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	targetFile := flag.String("targets", "targets.txt", "File to read targets from or store them to")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for random targets")
	algorithm := flag.String("search", "dijkstra", "Select the search algorithm: dijkstra or path-frontier")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatal(err)
		}
	}
	logger := logging.New(cfg.Logging)

	start := time.Now()
	m, err := routing.LoadMap(context.Background(), cfg.Data, logger)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)
	fmt.Printf("[TIME-Import] = %s\n", elapsed)

	navigator, reference := getNavigators(*algorithm, m.Graph())
	if navigator == nil {
		log.Fatal("Navigator not supported")
	}

	var targets []target
	if *useRandomTargets {
		targets = createTargets(*amountTargets, reference, rand.New(rand.NewSource(*seed)))
		if *storeTargets {
			writeTargets(targets, *targetFile)
		}
	} else {
		targets = readTargets(*targetFile)
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(navigator, targets)
}

// the other navigator serves as reference
func getNavigators(algorithm string, g *campus.Graph) (p.Navigator[orb.Point], p.Navigator[orb.Point]) {
	if slice.Contains([]string{"default", "dijkstra"}, algorithm) {
		return p.NewDijkstra(g), p.NewPathFrontier(g)
	} else if algorithm == "path-frontier" {
		return p.NewPathFrontier(g), p.NewDijkstra(g)
	}
	return nil, nil
}

func readTargets(filename string) []target {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.origin, &t.destination, &t.length, &t.hops); err != nil {
			log.Fatalf("%v: %v", filename, err)
		}
		targets = append(targets, t)
	}
	return targets
}

func createTargets(n int, referenceNavigator p.Navigator[orb.Point], rng *rand.Rand) []target {
	g := referenceNavigator.GetGraph()
	targets := make([]target, n)
	for i := 0; i < n; i++ {
		origin := rng.Intn(g.NodeCount())
		destination := rng.Intn(g.NodeCount())
		path, found, err := referenceNavigator.ShortestPath(g.GetNode(origin), g.GetNode(destination))
		if err != nil {
			log.Fatal(err)
		}
		t := target{origin: origin, destination: destination, length: -1}
		if found {
			t.length = path.Cost()
			t.hops = path.Hops()
		}
		targets[i] = t
	}
	return targets
}

func writeTargets(targets []target, targetFile string) {
	var sb strings.Builder
	sb.WriteString("# origin destination length hops\n")
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%v %v %v %v\n", t.origin, t.destination, t.length, t.hops))
	}

	file, cErr := os.Create(targetFile)
	if cErr != nil {
		log.Fatal(cErr)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	writer.WriteString(sb.String())
	writer.Flush()
}

// Run benchmarks on the provided graph and targets
func benchmark(navigator p.Navigator[orb.Point], targets []target) {
	g := navigator.GetGraph()
	var runtime time.Duration = 0
	completed := 0

	var kpis p.SearchKPIs

	invalidLengths := make([]int, 0)
	invalidResults := make([]int, 0)
	invalidHops := make([]int, 0)

	showResults := func() {
		if completed == 0 {
			fmt.Println("No targets completed")
			return
		}
		fmt.Printf("Average runtime: %.3fms\n", float64(int(runtime.Nanoseconds())/completed)/1000000)
		fmt.Printf("Average pq pops: %d\n", kpis.PqPops/completed)
		fmt.Printf("Average pq pushes: %d\n", kpis.PqPushes/completed)
		fmt.Printf("Average settled nodes: %d\n", kpis.SettledNodes/completed)
		fmt.Printf("Average relaxations attempts: %d\n", kpis.RelaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", kpis.RelaxedEdges/completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, result := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, result, targets[result].origin, targets[result].destination)
		}

		fmt.Printf("%v/%v invalid path lengths.\n", len(invalidLengths), completed)
		for i, testcase := range invalidLengths {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid length. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].length)
		}

		fmt.Printf("%v/%v invalid hops number.\n", len(invalidHops), completed)
		for i, testcase := range invalidHops {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid #hops. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].hops)
		}
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, t := range targets {
		origin := g.GetNode(t.origin)
		destination := g.GetNode(t.destination)

		start := time.Now()
		result, err := navigator.Search(origin, destination)
		elapsed := time.Since(start)
		if err != nil {
			log.Fatal(err)
		}

		kpis.PqPops += result.KPIs.PqPops
		kpis.PqPushes += result.KPIs.PqPushes
		kpis.SettledNodes += result.KPIs.SettledNodes
		kpis.RelaxationAttempts += result.KPIs.RelaxationAttempts
		kpis.RelaxedEdges += result.KPIs.RelaxedEdges

		fmt.Printf("[%3v TIME-Navigate, PQ Pops, PQ Pushes, relaxed Edges, relax attempts] = %12s, %7d, %7d, %7d, %7d\n", i, elapsed, result.KPIs.PqPops, result.KPIs.PqPushes, result.KPIs.RelaxedEdges, result.KPIs.RelaxationAttempts)

		length := -1.0
		if result.Found {
			length = result.Path.Cost()
			if result.Path.Start() != origin || result.Path.End() != destination {
				invalidResults = append(invalidResults, i)
			}
		}
		if length != t.length {
			invalidLengths = append(invalidLengths, i)
		}
		if result.Path.Hops() != t.hops {
			invalidHops = append(invalidHops, i)
		}

		runtime += elapsed
		completed++
	}
	// normal termination, show results
	showResults()
}
