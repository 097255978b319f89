package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ciphron/scdl"
	"github.com/ciphron/scdl/gf2"
	"github.com/ciphron/scdl/internal/app"
	"github.com/ciphron/scdl/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:])
	case "run":
		err = runRun(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "scdlc:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: scdlc <compile|run|serve> [flags]")
}

// runCompile compiles a source file and prints each circuit's size.
func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: scdlc compile <file>")
	}

	p, err := scdl.CompileFile(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("variables: %s\n", strings.Join(p.VariableNames(), ", "))
	fmt.Printf("constants: %s\n", strings.Join(p.ConstantNames(), ", "))
	for _, name := range p.CircuitNames() {
		c, _ := p.GetCircuit(name)
		fmt.Printf("circuit %-16s gates=%-6d depth=%-4d add=%-6d mul=%-6d\n",
			name, c.NumGates(), c.Depth(), c.NumAdd(), c.NumMultiply())
	}
	return nil
}

// runRun compiles a source file and evaluates one circuit over GF(2),
// given each input variable's bit value on the command line as name=0/1.
func runRun(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	circName := fs.String("circuit", "", "name of the circuit to evaluate")
	fs.Parse(args)
	if fs.NArg() < 1 || *circName == "" {
		return fmt.Errorf("usage: scdlc run -circuit NAME <file> [var=0|1 ...]")
	}

	p, err := scdl.CompileFile(fs.Arg(0))
	if err != nil {
		return err
	}

	bits := make([]gf2.Bit, p.NumVarInputs())
	for _, assign := range fs.Args()[1:] {
		name, val, ok := strings.Cut(assign, "=")
		if !ok {
			return fmt.Errorf("invalid assignment %q, expected name=0|1", assign)
		}
		v, ok := p.GetVariable(name)
		if !ok {
			return fmt.Errorf("unknown variable %q", name)
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid value for %q: %w", name, err)
		}
		bits[v.Index] = gf2.FromInt(n)
	}

	result, err := scdl.Run(p, *circName, bits, gf2.FromInt)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

// runServe starts the HTTP API, using config loaded from an optional
// config file and SCDL_-prefixed environment variables.
func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a config file (optional)")
	version := fs.String("version", "dev", "version string reported by the server")
	fs.Parse(args)

	c, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	srv, err := app.NewServer(app.ServerOptions{C: c, Version: *version})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Listen(c.ServerPort(), c.ServerLocalOnly()); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		return srv.Shutdown(context.Background())
	}
}
