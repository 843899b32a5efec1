package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkray/arith"
)

var rootCmd = &cobra.Command{
	Use:   "arith",
	Short: "An interactive calculator with variables and assignment.",
	Long: `arith reads expressions one per line and evaluates them against a
persistent variable store. Assignments like "y = 1 + 2 * x" (and the
compound forms +=, -=, *=, /=) update the store; any other line prints its
value. The variables pi and x (= 42) are defined at startup. Lines that do
not parse report the unparseable remainder and leave the store untouched.
Reading continues until end of input.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().String("in", "", "input file (default stdin)")
	rootCmd.Flags().StringArray("given", nil, `"name=value" variable definition (any number of times)`)
	rootCmd.Flags().Bool("echo", false, "print parse trees before results")
	rootCmd.Flags().String("fmt", "%g", "result formatting verb")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func run(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}

	env := arith.NewEnv(arith.SetVars(map[string]float64{
		"pi": math.Pi,
		"x":  42,
	}))
	givens, _ := cmd.Flags().GetStringArray("given")
	for _, g := range givens {
		name, val, ok := strings.Cut(g, "=")
		if !ok {
			return fmt.Errorf("variable definitions must be %q, not %q", "name=value", g)
		}
		name = strings.TrimSpace(name)
		r, err := arith.EvalString(val, env)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		env.Set(name, r)
		log.WithField("name", name).Debugf("seeded variable = %g", r)
	}

	inname, _ := cmd.Flags().GetString("in")
	in, prompt, err := input(inname)
	if err != nil {
		return err
	}

	echo, _ := cmd.Flags().GetBool("echo")
	verb, _ := cmd.Flags().GetString("fmt")
	verb += "\n"
	bad := color.New(color.FgRed)

	sc := bufio.NewScanner(in)
	sc.Buffer(nil, 1<<20)
	for {
		if prompt {
			fmt.Print("> ")
		}
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		a, err := arith.Parse(line)
		if err != nil {
			bad.Fprintln(os.Stderr, err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", a)
		}
		fmt.Printf(verb, a.Eval(env))
	}
	return sc.Err()
}

// input selects the line source and reports whether to print a prompt.
func input(inname string) (io.Reader, bool, error) {
	if inname != "" && inname != "-" {
		f, err := os.Open(inname)
		if err != nil {
			return nil, false, err
		}
		return f, false, nil
	}
	return os.Stdin, term.IsTerminal(int(os.Stdin.Fd())), nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
