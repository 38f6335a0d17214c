package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	browserslist "github.com/albertocavalcante/go-browserslist"
)

var (
	mobileToDesktop       bool
	ignoreUnknownVersions bool
	configPath            string
	env                   string
	path                  string
	nodeVersion           string
	throwOnMissing        bool
	jsonOutput            bool
	verbose               bool
)

var rootCmd = &cobra.Command{
	Use:   "browserslist [queries...]",
	Short: "browserslist resolves browser queries",
	Long: `browserslist resolves queries such as "> 0.5%, last 2 versions, not dead"
into the browser and runtime releases they select.

Each argument is one query. Without arguments, queries are read from the
BROWSERSLIST environment variable or from the nearest .browserslistrc,
browserslist, package.json or BUILD file, falling back to "defaults".`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runResolve,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&mobileToDesktop, "mobile-to-desktop", false, "Use desktop release data for mobile browsers")
	f.BoolVar(&ignoreUnknownVersions, "ignore-unknown-versions", false, "Select nothing for unknown versions instead of failing")
	f.StringVar(&configPath, "config", "", "Configuration file to read instead of searching")
	f.StringVar(&env, "env", "", "Configuration section to use")
	f.StringVar(&path, "path", "", "Directory to search for configuration from")
	f.StringVar(&nodeVersion, "node-version", "", `Node.js version reported by "current node"`)
	f.BoolVar(&throwOnMissing, "throw-on-missing", false, "Fail when the configuration section is missing")
	f.BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log resolution details to stderr")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func runResolve(cmd *cobra.Command, args []string) error {
	opts := []browserslist.Option{
		browserslist.WithMobileToDesktop(mobileToDesktop),
		browserslist.WithIgnoreUnknownVersions(ignoreUnknownVersions),
		browserslist.WithConfigPath(configPath),
		browserslist.WithEnv(env),
		browserslist.WithPath(path),
		browserslist.WithThrowOnMissing(throwOnMissing),
		browserslist.WithNodeVersion(nodeVersion),
	}
	if logger := newLogger(cmd.ErrOrStderr()); logger != nil {
		opts = append(opts, browserslist.WithLogger(logger))
	}

	r, err := browserslist.NewResolver(opts...)
	if err != nil {
		return err
	}

	var distribs []browserslist.Distrib
	if len(args) > 0 {
		distribs, err = r.Resolve(args)
	} else {
		distribs, err = r.Execute()
	}
	if err != nil {
		return err
	}
	return printDistribs(cmd.OutOrStdout(), distribs)
}

func printDistribs(w io.Writer, distribs []browserslist.Distrib) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if distribs == nil {
			distribs = []browserslist.Distrib{}
		}
		return enc.Encode(distribs)
	}

	var b strings.Builder
	for _, d := range distribs {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}
