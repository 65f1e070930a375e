package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gubarz/roadforge/internal/config"
	"github.com/gubarz/roadforge/internal/executor"
	"github.com/gubarz/roadforge/internal/ingest"
	"github.com/gubarz/roadforge/internal/loader"
	"github.com/gubarz/roadforge/internal/logging"
	"github.com/gubarz/roadforge/internal/parser"
	"github.com/gubarz/roadforge/internal/records"
	"github.com/gubarz/roadforge/internal/schedule"
	"github.com/gubarz/roadforge/internal/ui"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a roadmap and print it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var refsCmd = &cobra.Command{
	Use:   "refs [file]",
	Short: "List reference sections, or print one with --section",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefs,
}

var todayCmd = &cobra.Command{
	Use:   "today [file]",
	Short: "Show the tasks scheduled for today",
	Long: `Shows the roadmap day for today. Monday to Friday map to one roadmap day
each and the weekend to a single day, starting from the start date.

The start date comes from --start, the roadmap's front matter or the
start_date config key, in that order. --day picks a roadmap day directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runToday,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export normalized records as JSON or YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Import a roadmap, preferring a structured extraction",
	Long: `Imports a roadmap. When --structured names a JSON extraction of the
document its weeks are used, falling back to the local parser when the
extraction is unreadable, empty or invalid. Reference sections always come
from the local parser.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a roadmap",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

var libraryCmd = &cobra.Command{
	Use:   "library [dir]",
	Short: "Summarize every roadmap in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLibrary,
}

func init() {
	parseCmd.Flags().BoolP("benchmark", "b", false, "Benchmark parse time and exit")

	refsCmd.Flags().StringP("section", "s", "", "Print the named section verbatim")

	todayCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	todayCmd.Flags().Int("day", 0, "Roadmap day to show, counting from 1")
	todayCmd.Flags().Bool("copy", false, "Copy today's links (shorthand for -o copy)")
	todayCmd.Flags().Bool("open", false, "Open today's links (shorthand for -o open)")
	todayCmd.Flags().StringP("output", "o", "", "Link output: print, copy, open")

	exportCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().Int("completed", 0, "Mark the first N roadmap days as completed")

	ingestCmd.Flags().String("structured", "", "JSON extraction of the roadmap")
}

// resolvePath returns the roadmap path from args or config
func resolvePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.GetPath()
}

func loadRoadmap(args []string) (*loader.Document, *parser.Roadmap, error) {
	doc, err := loader.Load(resolvePath(args))
	if err != nil {
		return nil, nil, fmt.Errorf("load roadmap: %w", err)
	}
	return doc, doc.Parse(parserOptions()...), nil
}

func parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithExcludedSections(config.GetExcludeSections()...),
		parser.WithLogger(logging.Component("parser")),
	}
}

func outputFormat() (string, error) {
	format := config.GetFormat()
	if !ui.ValidFormat(format) {
		return "", fmt.Errorf("%w: %q (supported: text, json, yaml)", ui.ErrUnknownFormat, format)
	}
	return format, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	benchmark, _ := cmd.Flags().GetBool("benchmark")
	start := time.Now()

	_, roadmap, err := loadRoadmap(args)
	if err != nil {
		return err
	}

	if benchmark {
		elapsed := time.Since(start)
		runtime.GC()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Printf("Parsed %d weeks, %d days, %d tasks in %v\n",
			len(roadmap.Weeks), roadmap.DayCount(), roadmap.TaskCount(), elapsed)
		fmt.Printf("Memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, HeapObjects=%d\n",
			m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.HeapObjects)
		return nil
	}

	if format == ui.FormatText {
		ui.NewPrinter(os.Stdout).Roadmap(roadmap)
		return nil
	}
	return ui.Encode(os.Stdout, roadmap, format)
}

func runRefs(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	_, roadmap, err := loadRoadmap(args)
	if err != nil {
		return err
	}

	section, _ := cmd.Flags().GetString("section")
	if section != "" {
		ref, ok := roadmap.Reference(section)
		if !ok {
			return fmt.Errorf("no reference section %q", section)
		}
		if format == ui.FormatText {
			ui.NewPrinter(os.Stdout).Reference(ref)
			return nil
		}
		return ui.Encode(os.Stdout, ref, format)
	}

	if format == ui.FormatText {
		ui.NewPrinter(os.Stdout).References(roadmap.References)
		return nil
	}
	return ui.Encode(os.Stdout, roadmap.References, format)
}

// startDate picks the start date from the flag, front matter or config
func startDate(flag string, doc *loader.Document) (time.Time, bool, error) {
	for _, s := range []string{flag, doc.Meta.StartDate, config.GetStartDate()} {
		if s == "" {
			continue
		}
		t, err := schedule.ParseStartDate(s)
		if err != nil {
			return time.Time{}, false, err
		}
		return t, true, nil
	}
	return time.Time{}, false, nil
}

type todayView struct {
	Date           string     `json:"date" yaml:"date"`
	GlobalDayIndex int        `json:"globalDayIndex" yaml:"globalDayIndex"`
	WeekNumber     int        `json:"weekNumber" yaml:"weekNumber"`
	WeekTitle      string     `json:"weekTitle" yaml:"weekTitle"`
	Day            parser.Day `json:"day" yaml:"day"`
}

func runToday(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput(string(executor.OutputCopy))
	} else if o, _ := cmd.Flags().GetBool("open"); o {
		config.SetOutput(string(executor.OutputOpen))
	} else if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
	mode := executor.OutputMode(config.GetOutput())
	if !mode.Valid() {
		return fmt.Errorf("unknown output mode %q (supported: print, copy, open)", mode)
	}

	doc, roadmap, err := loadRoadmap(args)
	if err != nil {
		return err
	}

	now := time.Now()
	var index int
	if day, _ := cmd.Flags().GetInt("day"); day > 0 {
		index = day - 1
	} else {
		flag, _ := cmd.Flags().GetString("start")
		start, ok, err := startDate(flag, doc)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no start date: use --start, front matter start_date or the start_date config key")
		}
		index = schedule.DayIndex(start, now)
	}

	slot, err := schedule.Lookup(schedule.Flatten(roadmap), index)
	if err != nil {
		if errors.Is(err, schedule.ErrDayOutOfRange) {
			return fmt.Errorf("roadmap has no day %d: %w", index+1, err)
		}
		return err
	}

	if format != ui.FormatText {
		return ui.Encode(os.Stdout, todayView{
			Date:           now.Format(schedule.DateLayout),
			GlobalDayIndex: slot.GlobalDayIndex,
			WeekNumber:     slot.WeekNumber,
			WeekTitle:      slot.WeekTitle,
			Day:            slot.Day,
		}, format)
	}

	fmt.Println(schedule.FormatDate(now))
	ui.NewPrinter(os.Stdout).Day(slot)

	if mode == executor.OutputPrint {
		return nil
	}
	var links []string
	for _, t := range slot.Day.Tasks {
		if t.Link != "" {
			links = append(links, t.Link)
		}
	}
	return executor.NewExecutor().Output(links)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, roadmap, err := loadRoadmap(args)
	if err != nil {
		return err
	}

	flag, _ := cmd.Flags().GetString("start")
	start, _, err := startDate(flag, doc)
	if err != nil {
		return err
	}

	format, err := exportFormat()
	if err != nil {
		return err
	}

	set := records.Build(roadmap, start)
	if n, _ := cmd.Flags().GetInt("completed"); n > 0 {
		set.Complete(completedDays(set, n)...)
	}
	return ui.Encode(os.Stdout, set, format)
}

// exportFormat is the output format with text promoted to JSON
func exportFormat() (string, error) {
	if config.GetFormat() == ui.FormatText {
		config.SetFormat(ui.FormatJSON)
	}
	return outputFormat()
}

// completedDays returns the IDs of the first n roadmap days
func completedDays(set *records.Set, n int) []uuid.UUID {
	var ids []uuid.UUID
	for _, d := range set.Days {
		if d.GlobalDayIndex < n {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

func runIngest(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	doc, err := loader.Load(resolvePath(args))
	if err != nil {
		return fmt.Errorf("load roadmap: %w", err)
	}

	var extractor ingest.Extractor
	if structured, _ := cmd.Flags().GetString("structured"); structured != "" {
		extractor = ingest.JSONExtractor{Path: structured}
	}

	ingester := ingest.NewIngester(doc.Parser(parserOptions()...), extractor).
		WithLogger(logging.Component("ingest"))
	result, err := ingester.Ingest(cmd.Context(), doc.Body)
	if err != nil {
		return err
	}
	if doc.Meta.Title != "" {
		result.Roadmap.Title = doc.Meta.Title
	}

	if format == ui.FormatText {
		fmt.Fprintf(os.Stderr, "weeks from %s\n", result.Source)
		ui.NewPrinter(os.Stdout).Roadmap(result.Roadmap)
		return nil
	}
	return ui.Encode(os.Stdout, result.Roadmap, format)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, roadmap, err := loadRoadmap(args)
	if err != nil {
		return err
	}

	if err := ingest.Validate(roadmap); err != nil {
		return err
	}

	stats := records.Summarize(roadmap)
	fmt.Printf("ok: %d weeks, %d days, %d tasks\n", stats.Weeks, stats.TotalDays, stats.TotalTasks)
	return nil
}

func runLibrary(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	paths, err := loader.Discover(root, config.GetLibraryPattern())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no roadmaps found in %s", root)
	}

	docs, err := loader.LoadAll(paths)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(os.Stdout)
	for i, doc := range docs {
		if i > 0 {
			fmt.Println()
		}
		name, relErr := filepath.Rel(root, doc.Path)
		if relErr != nil {
			name = doc.Path
		}
		printer.Stats(name, records.Summarize(doc.Parse(parserOptions()...)))
	}
	return nil
}
