package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/internal/render"
)

// profileFile is the YAML input of the render command.
type profileFile struct {
	Profile  portfolio.UserProfile `yaml:"profile"`
	Projects []portfolio.Project   `yaml:"projects"`
	Theme    string                `yaml:"theme"`
}

var errMissingFields = errors.New("profile is missing required fields")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Render portfolio HTML from a profile",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newThemesCmd())
	return root
}

type renderOptions struct {
	input   string
	theme   string
	variant string
	out     string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML profile to HTML",
		Long: `Reads a YAML profile, checks the required fields and writes the
preview fragment or the standalone document. --theme overrides the theme in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "YAML profile file (- for stdin)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "theme: blue, purple, green or orange")
	cmd.Flags().StringVar(&opts.variant, "variant", string(render.VariantDocument), "preview or document")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runRender(stdout io.Writer, opts *renderOptions) error {
	pf, err := readProfileFile(opts.input)
	if err != nil {
		return err
	}

	profile := pf.Profile.Normalize()
	if missing := profile.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingFields, strings.Join(missing, ", "))
	}

	themeName := pf.Theme
	if opts.theme != "" {
		themeName = opts.theme
	}
	theme := portfolio.DefaultTheme
	if themeName != "" {
		if theme, err = portfolio.ParseTheme(themeName); err != nil {
			return err
		}
	}
	variant, err := render.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	html, err := render.Render(variant, profile, pf.Projects, theme)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = io.WriteString(stdout, html)
		return err
	}
	if err := os.WriteFile(opts.out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", opts.out, len(html))
	return nil
}

func readProfileFile(path string) (profileFile, error) {
	var (
		pf   profileFile
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return pf, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return pf, nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "THEME\tPRIMARY\tSECONDARY")
			for _, t := range portfolio.Themes() {
				p, err := portfolio.ResolveTheme(t)
				if err != nil {
					return err
				}
				name := string(t)
				if t == portfolio.DefaultTheme {
					name += " (default)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Primary, p.Secondary)
			}
			return w.Flush()
		},
	}
}
