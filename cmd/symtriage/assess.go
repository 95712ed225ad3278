package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bisheshoggo/symtriage/internal/format"
	"github.com/bisheshoggo/symtriage/internal/intake"
	"github.com/bisheshoggo/symtriage/internal/reporter"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

var assessFlags struct {
	symptoms []string
	severity int
	duration string
	age      int
	temp     float64
	chronic  bool
	pregnant bool
	notes    string
	patient  string
	lang     string
	output   string
	save     bool
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess one symptom report",
	Example: `  symtriage assess -s "chest pain" --severity 4 --duration 1-3-days --age 50
  symtriage assess -s জ্বর -s কাশি --severity 6 --temp 101 --lang bn -o yaml`,
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := assessFlags

		duration, err := triage.ParseDurationBucket(f.duration)
		if err != nil {
			return err
		}
		report := triage.Report{
			Symptoms:             f.symptoms,
			Duration:             duration,
			Severity:             f.severity,
			Age:                  f.age,
			HasChronicConditions: f.chronic,
			IsPregnant:           f.pregnant,
			Notes:                f.notes,
		}
		if cmd.Flags().Changed("temp") {
			report.TemperatureF = triage.Temp(f.temp)
		}
		if err := report.Validate(); err != nil {
			return err
		}

		lang := triage.ParseLanguage(cfg.Locale.Language)
		if f.lang != "" {
			lang = triage.ParseLanguage(f.lang)
		}

		result := triage.Assess(report)
		var checkID string

		if f.save {
			db, err := openStore(cfg)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			svc := intake.New(db, reporter.NewNtfy(cfg), intakeOptions(cfg))
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			c, err := svc.Submit(ctx, intake.Submission{PatientID: f.patient, Report: report})
			if err != nil {
				return err
			}
			result, checkID = c.Result, c.ID
		}

		return printAssessment(os.Stdout, f.output, report, result, lang, checkID)
	},
}

var explainCmd = &cobra.Command{
	Use:         "explain <level>",
	Short:       "Explain what a risk level means",
	Args:        cobra.ExactArgs(1),
	Annotations: quiet(),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := triage.ParseRiskLevel(args[0])
		if err != nil {
			return err
		}
		lang := triage.ParseLanguage(cfg.Locale.Language)
		if v, _ := cmd.Flags().GetString("lang"); v != "" {
			lang = triage.ParseLanguage(v)
		}
		fmt.Println(triage.ExplainRiskLevel(level, lang))
		return nil
	},
}

func init() {
	fl := assessCmd.Flags()
	fl.StringArrayVarP(&assessFlags.symptoms, "symptom", "s", nil, "symptom (repeatable)")
	fl.IntVar(&assessFlags.severity, "severity", 0, "self-reported severity 1-10")
	fl.StringVar(&assessFlags.duration, "duration", string(triage.DurationUnderDay), "less-than-day, 1-3-days, 4-7-days or more-than-week")
	fl.IntVar(&assessFlags.age, "age", 0, "age in years")
	fl.Float64Var(&assessFlags.temp, "temp", 0, "body temperature in °F")
	fl.BoolVar(&assessFlags.chronic, "chronic", false, "has chronic conditions")
	fl.BoolVar(&assessFlags.pregnant, "pregnant", false, "is pregnant")
	fl.StringVar(&assessFlags.notes, "notes", "", "free-text notes")
	fl.StringVar(&assessFlags.patient, "patient", "", "patient ID (with --save)")
	fl.StringVar(&assessFlags.lang, "lang", "", "display language: en or bn")
	fl.StringVarP(&assessFlags.output, "output", "o", "text", "output format: text, json or yaml")
	fl.BoolVar(&assessFlags.save, "save", false, "store the check and send alerts")
	_ = assessCmd.MarkFlagRequired("severity")

	explainCmd.Flags().String("lang", "", "display language: en or bn")

	rootCmd.AddCommand(assessCmd, explainCmd)
}

// assessment is the structured output of the assess command.
type assessment struct {
	CheckID     string                 `json:"check_id,omitempty" yaml:"check_id,omitempty"`
	Report      triage.Report          `json:"report" yaml:"report"`
	Result      triage.Result          `json:"result" yaml:"result"`
	Display     triage.LocalizedResult `json:"display" yaml:"display"`
	Explanation string                 `json:"explanation" yaml:"explanation"`
}

func printAssessment(w io.Writer, output string, report triage.Report, result triage.Result, lang triage.Language, checkID string) error {
	a := assessment{
		CheckID:     checkID,
		Report:      report,
		Result:      result,
		Display:     result.Localize(lang),
		Explanation: triage.ExplainRiskLevel(result.RiskLevel, lang),
	}

	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(a)
	case "text", "":
		printText(w, a, lang)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func printText(w io.Writer, a assessment, lang triage.Language) {
	d := a.Display

	fmt.Fprintf(w, "Risk level:  %s\n", strings.ToUpper(string(d.RiskLevel)))
	fmt.Fprintf(w, "Urgency:     %s\n", d.Urgency)
	if t := a.Report.TemperatureF; t != nil {
		fmt.Fprintf(w, "Temperature: %s\n", format.Fahrenheit(*t))
	}
	fmt.Fprintf(w, "\n%s\n", d.Recommendation)

	printList(w, "Reasons", d.Reasons)
	printList(w, "Advice", d.Advice)
	printList(w, "Warning signs", d.WarningSigns)

	fmt.Fprintf(w, "\n%s\n", a.Explanation)

	if d.ShouldSeekImmediateCare {
		hotline := cfg.Emergency.Hotline
		if lang == triage.Bengali {
			hotline = format.BengaliDigits(hotline)
		}
		fmt.Fprintf(w, "\n\u260e %s\n", hotline)
	}
	if a.CheckID != "" {
		fmt.Fprintf(w, "\nSaved as %s\n", a.CheckID)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
