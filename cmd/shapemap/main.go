package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	json "github.com/goccy/go-json"

	shapemap "github.com/shapemap/shapemap"
	"github.com/shapemap/shapemap/mapfile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "map":
		mapCmd(os.Args[2:])
	case "shapes":
		shapesCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "shapemap CLI\n\nUsage:\n  shapemap map -mapping m.yaml -shape Name [-pick a,b | -omit a,b | -group g] [-in file.json]\n  shapemap shapes -mapping m.yaml\n\nNotes:\n  - Input JSON is read from -in or stdin; an array input maps element-wise.\n  - Shapes using named transforms need compiled-in functions and are rejected here.")
}

// cliShape stands in for the Go target type a mapping file shape would bind
// to in a program; the CLI only ever maps one shape per invocation.
type cliShape struct{}

func mapCmd(args []string) {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	var mappingPath, shape, pickCSV, omitCSV, group, inPath string
	fs.StringVar(&mappingPath, "mapping", "", "mapping YAML file")
	fs.StringVar(&shape, "shape", "", "shape name from the mapping file")
	fs.StringVar(&pickCSV, "pick", "", "comma-separated fields to keep")
	fs.StringVar(&omitCSV, "omit", "", "comma-separated fields to drop")
	fs.StringVar(&group, "group", "", "group name to keep")
	fs.StringVar(&inPath, "in", "", "input JSON file (default stdin)")
	_ = fs.Parse(args)
	if mappingPath == "" || shape == "" {
		fs.Usage()
		os.Exit(2)
	}

	decls, err := declsForShape(mappingPath, shape)
	if err != nil {
		fatal(err)
	}
	reg := shapemap.NewRegistry()
	target := reflect.TypeOf(cliShape{})
	if err := reg.Register(target, decls); err != nil {
		fatal(err)
	}

	var opt shapemap.Option
	switch {
	case group != "":
		opt = shapemap.Group(group)
	case pickCSV != "":
		opt = shapemap.Pick(splitCSV(pickCSV)...)
	case omitCSV != "":
		opt = shapemap.Omit(splitCSV(omitCSV)...)
	}
	m, err := reg.Compile(target, opt)
	if err != nil {
		fatal(err)
	}

	data, err := readInput(inPath)
	if err != nil {
		fatal(err)
	}
	var src any
	if err := json.Unmarshal(data, &src); err != nil {
		fatal(fmt.Errorf("invalid input JSON: %w", err))
	}

	var result any
	if _, isArr := src.([]any); isArr {
		result = m.MapSlice(src, shapemap.NewContext())
	} else {
		result = m.Map(src, shapemap.NewContext())
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(out))
}

func shapesCmd(args []string) {
	fs := flag.NewFlagSet("shapes", flag.ExitOnError)
	var mappingPath string
	fs.StringVar(&mappingPath, "mapping", "", "mapping YAML file")
	_ = fs.Parse(args)
	if mappingPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	f, err := mapfile.LoadFile(mappingPath)
	if err != nil {
		fatal(err)
	}
	for _, sd := range f.Shapes {
		fmt.Printf("%s\n", sd.Shape)
		for _, fd := range sd.Fields {
			switch {
			case fd.Ignore:
				fmt.Printf("  %s (ignored)\n", fd.Field)
			case fd.Transform != "":
				fmt.Printf("  %s <- transform %s\n", fd.Field, fd.Transform)
			default:
				fmt.Printf("  %s <- %s\n", fd.Field, fd.Path)
			}
			if len(fd.Groups) > 0 {
				fmt.Printf("    groups: %s\n", strings.Join(fd.Groups, ", "))
			}
		}
	}
}

// declsForShape extracts one shape's declarations from a mapping file.
// Transform locators cannot run without compiled-in functions, so shapes that
// use them are rejected.
func declsForShape(mappingPath, shape string) ([]shapemap.Declaration, error) {
	f, err := mapfile.LoadFile(mappingPath)
	if err != nil {
		return nil, err
	}
	for _, sd := range f.Shapes {
		if sd.Shape != shape {
			continue
		}
		decls := make([]shapemap.Declaration, 0, len(sd.Fields))
		for _, fd := range sd.Fields {
			if fd.Transform != "" {
				return nil, fmt.Errorf("shape %s: field %s uses transform %q; transforms are not available in the CLI", shape, fd.Field, fd.Transform)
			}
			decls = append(decls, shapemap.Declaration{
				Key:    fd.Field,
				Path:   fd.Path,
				Groups: fd.Groups,
				Ignore: fd.Ignore,
			})
		}
		return decls, nil
	}
	return nil, fmt.Errorf("shape %s not found in %s", shape, mappingPath)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "shapemap:", err)
	os.Exit(1)
}
