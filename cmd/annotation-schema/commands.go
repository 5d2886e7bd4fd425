package main

import (
	"flag"
	"fmt"
	"strconv"

	"annotation-schema/internal/allele"
	"annotation-schema/internal/analyze"
	"annotation-schema/internal/config"
	"annotation-schema/internal/diagnostic"
	"annotation-schema/internal/document"
	"annotation-schema/internal/group"
	"annotation-schema/internal/memhost"
	"annotation-schema/internal/merge"
	"annotation-schema/internal/schema"
	"annotation-schema/internal/unify"
)

// loadAll reads the documents at paths and concatenates their datasets.
func loadAll(paths []string) (*document.File, error) {
	if len(paths) == 0 {
		return nil, errUsage
	}

	out := &document.File{}

	for _, path := range paths {
		f, err := document.LoadFile(path)
		if err != nil {
			return nil, err
		}

		if out.Root != "" && f.Root != "" && out.Root != f.Root {
			return nil, fmt.Errorf("document %s has root %s, previous documents have %s", path, f.Root, out.Root)
		}

		if out.Root == "" {
			out.Root = f.Root
		}

		out.Version = f.Version
		out.Datasets = append(out.Datasets, f.Datasets...)
	}

	return out, nil
}

func loadOne(fs *flag.FlagSet) (*document.File, error) {
	path, err := onlyArg(fs)
	if err != nil {
		return nil, err
	}

	return document.LoadFile(path)
}

func pick(doc *document.File, i int) (document.Dataset, error) {
	if i < 0 || i >= len(doc.Datasets) {
		return document.Dataset{}, fmt.Errorf("dataset %d out of range, document has %d", i, len(doc.Datasets))
	}

	return doc.Datasets[i], nil
}

func output(root string, datasets ...document.Dataset) *document.File {
	return &document.File{Version: "1", Root: root, Datasets: datasets}
}

type flatEntry struct {
	Path       string            `yaml:"path"`
	Type       string            `yaml:"type"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

func runFlatten(e *env, fs *flag.FlagSet, args []string) error {
	leaf := fs.Bool("leaf", true, "only list terminal fields")
	recursive := fs.Bool("recursive", true, "descend into structs")
	idx := fs.Int("dataset", 0, "index of the dataset")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadOne(fs)
	if err != nil {
		return err
	}

	d, err := pick(doc, *idx)
	if err != nil {
		return err
	}

	s, err := d.Struct()
	if err != nil {
		return err
	}

	flat := schema.Flatten(s, e.root(doc), *leaf, *recursive)

	entries := make([]flatEntry, 0, flat.Len())
	for pair := flat.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, flatEntry{Path: pair.Key, Type: pair.Value.Type.String(), Attributes: pair.Value.Attributes})
	}

	e.report(diagnostic.Diagnostics{}, flat)

	return e.writeYAML(entries)
}

type groupEntry struct {
	Number string   `yaml:"number"`
	Paths  []string `yaml:"paths"`
}

func runGroup(e *env, fs *flag.FlagSet, args []string) error {
	at := fs.String("at", "", "path of the struct to classify (default <root>.info)")
	recursive := fs.Bool("recursive", false, "descend into nested structs")
	ignore := fs.String("ignore", "", "comma-separated regular expressions of field names to leave out")
	idx := fs.Int("dataset", 0, "index of the dataset")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadOne(fs)
	if err != nil {
		return err
	}

	d, err := pick(doc, *idx)
	if err != nil {
		return err
	}

	s, err := d.Struct()
	if err != nil {
		return err
	}

	path := *at
	if path == "" {
		path = schema.JoinPath(e.root(doc), "info")
	}

	groups, diags, err := group.NumberedBy(s, e.cfg.NumberKey, path, *recursive, e.cfg.DefaultWhenMissing)
	e.report(diags, groups)

	if err != nil {
		return err
	}

	patterns := config.SplitList(*ignore)

	var entries []groupEntry

	for _, k := range groups.Keys() {
		fields, err := group.FilterByRegex(groups.Get(k), patterns)
		if err != nil {
			return err
		}

		if len(fields) == 0 {
			continue
		}

		entry := groupEntry{Number: k.String()}
		for _, f := range fields {
			entry.Paths = append(entry.Paths, f.Path)
		}

		entries = append(entries, entry)
	}

	return e.writeYAML(entries)
}

func runMerge(e *env, fs *flag.FlagSet, args []string) error {
	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadAll(fs.Args())
	if err != nil {
		return err
	}

	structs, err := doc.Structs()
	if err != nil {
		return err
	}

	merged, diags, err := merge.Structs(structs...)
	e.report(diags, merged)

	if err != nil {
		return err
	}

	return e.writeYAML(output(e.root(doc), document.FromType("merged", schema.StructType(merged), nil)))
}

func hostDatasets(doc *document.File, root string) ([]unify.Dataset, error) {
	hosts, err := doc.Hosts(root)
	if err != nil {
		return nil, err
	}

	out := make([]unify.Dataset, len(hosts))
	for i, h := range hosts {
		out[i] = h
	}

	return out, nil
}

func toDocument(doc *document.File, root string, datasets []unify.Dataset) *document.File {
	out := output(root)

	for i, d := range datasets {
		h := d.(*memhost.Dataset)
		out.Datasets = append(out.Datasets, document.FromHost(doc.Datasets[i].Name, h))
	}

	return out
}

func runUnify(e *env, fs *flag.FlagSet, args []string) error {
	programs := fs.Bool("programs", false, "print the replace program of each dataset instead of the datasets")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadAll(fs.Args())
	if err != nil {
		return err
	}

	root := e.root(doc)

	if *programs {
		structs, err := doc.Structs()
		if err != nil {
			return err
		}

		plan, diags, err := unify.PlanUnify(structs, root)
		e.report(diags, plan)

		if err != nil {
			return err
		}

		return e.writeYAML(plan.Programs)
	}

	datasets, err := hostDatasets(doc, root)
	if err != nil {
		return err
	}

	out, diags, err := unify.UnifySchemas(datasets, root)
	e.report(diags, out)

	if err != nil {
		return err
	}

	return e.writeYAML(toDocument(doc, root, out))
}

func runConsolidate(e *env, fs *flag.FlagSet, args []string) error {
	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadAll(fs.Args())
	if err != nil {
		return err
	}

	root := e.root(doc)

	datasets, err := hostDatasets(doc, root)
	if err != nil {
		return err
	}

	out, diags, err := unify.ConsolidateLeaves(datasets, root)
	e.report(diags, out)

	if err != nil {
		return err
	}

	return e.writeYAML(toDocument(doc, root, out))
}

// altsRule returns the rule rewriting the alternate allele list itself,
// when the schema has one at path.
func altsRule(s *schema.Struct, root, path string, op allele.Op) []allele.Rule {
	if !schema.Exists(path, s, root) {
		return nil
	}

	return []allele.Rule{{Target: path, Op: op}}
}

func runSplit(e *env, fs *flag.FlagSet, args []string) error {
	alts := fs.String("alts", "", "path of the alternate allele array (default <root>.alts)")
	rules := fs.Bool("rules", false, "print the rewrite rules instead of the split datasets")
	fs.BoolVar(&e.cfg.DropReference, "drop-reference", e.cfg.DropReference, "turn R-based annotations into A-based ones")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	doc, err := loadOne(fs)
	if err != nil {
		return err
	}

	root := e.root(doc)
	altsPath := defaultPath(*alts, root, "alts")
	out := output(root)

	for _, d := range doc.Datasets {
		s, err := d.Struct()
		if err != nil {
			return err
		}

		plan, diags, err := allele.PlanSplitDataset(s, allele.SplitDatasetOptions{
			Root:          root,
			NumberKey:     e.cfg.NumberKey,
			Catalogue:     e.cfg.ASFilters,
			DropReference: e.cfg.DropReference,
		})
		e.report(diags, plan)

		if err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}

		plan.Rules = append(altsRule(s, root, altsPath, allele.OpIndexAlt), plan.Rules...)

		if *rules {
			if err := e.writeText(allele.RenderRules(plan.Rules)); err != nil {
				return err
			}

			continue
		}

		host, err := d.ToHost(root)
		if err != nil {
			return err
		}

		split, err := host.Split(plan, memhost.CountAt(altsPath))
		if err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}

		out.Datasets = append(out.Datasets, document.FromHost(d.Name, split))
	}

	if *rules {
		return nil
	}

	return e.writeYAML(out)
}

func runSubset(e *env, fs *flag.FlagSet, args []string) error {
	keep := fs.String("keep", "", "comma-separated allele indices to keep, reference (0) first")
	alts := fs.String("alts", "", "path of the alternate allele array (default <root>.alts)")
	rules := fs.Bool("rules", false, "print the rewrite rules instead of the subset datasets")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	aIndices, err := parseIndices(*keep)
	if err != nil {
		return err
	}

	doc, err := loadOne(fs)
	if err != nil {
		return err
	}

	root := e.root(doc)
	altsPath := defaultPath(*alts, root, "alts")
	out := output(root)

	for _, d := range doc.Datasets {
		s, err := d.Struct()
		if err != nil {
			return err
		}

		groups, diags, err := group.NumberedBy(s, e.cfg.NumberKey, schema.JoinPath(root, "info"), false, e.cfg.DefaultWhenMissing)
		e.report(diags, groups)

		if err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}

		subsetRules := allele.PlanSubset(groups, allele.SubsetOptions{Extra: filterRules(s, root, e.cfg.ASFilters)})
		subsetRules = append(altsRule(s, root, altsPath, allele.OpSelectAlts), subsetRules...)

		if *rules {
			if err := e.writeText(allele.RenderRules(subsetRules)); err != nil {
				return err
			}

			continue
		}

		host, err := d.ToHost(root)
		if err != nil {
			return err
		}

		subset, err := host.Subset(subsetRules, memhost.Keep(aIndices...), memhost.CountAt(altsPath))
		if err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}

		out.Datasets = append(out.Datasets, document.FromHost(d.Name, subset))
	}

	if *rules {
		return nil
	}

	return e.writeYAML(out)
}

// filterRules recomputes <root>.filters from the per-allele filter sets
// when the schema has both.
func filterRules(s *schema.Struct, root string, catalogue []string) []allele.Rule {
	filters := schema.JoinPath(root, "filters")
	perAllele := schema.JoinPath(schema.JoinPath(root, "info"), "AS_FilterStatus")

	if !schema.Exists(filters, s, root) || !schema.Exists(perAllele, s, root) {
		return nil
	}

	return []allele.Rule{{Target: filters, Source: perAllele, Op: allele.OpRecomputeFilters, Catalogue: catalogue}}
}

func runFromGo(e *env, fs *flag.FlagSet, args []string) error {
	typeName := fs.String("type", "", "name of the struct type")
	name := fs.String("name", "", "name of the output dataset (default the type name)")

	if err := e.parse(fs, args); err != nil {
		return err
	}

	pattern, err := onlyArg(fs)
	if err != nil || *typeName == "" {
		return errUsage
	}

	s, err := analyze.LoadStruct(pattern, *typeName)
	if err != nil {
		return err
	}

	e.report(diagnostic.Diagnostics{}, s)

	dataset := *name
	if dataset == "" {
		dataset = *typeName
	}

	return e.writeYAML(output(e.cfg.Root, document.FromType(dataset, schema.StructType(s), nil)))
}

func runJSONSchema(e *env, fs *flag.FlagSet, args []string) error {
	if err := e.parse(fs, args); err != nil {
		return err
	}

	data, err := document.JSONSchema()
	if err != nil {
		return err
	}

	return e.writeText(string(data))
}

func defaultPath(path, root, name string) string {
	if path != "" {
		return path
	}

	return schema.JoinPath(root, name)
}

func parseIndices(v string) ([]int, error) {
	items := config.SplitList(v)
	if len(items) == 0 {
		return nil, fmt.Errorf("-keep is required: %w", errUsage)
	}

	out := make([]int, len(items))

	for i, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid allele index %q: %w", item, err)
		}

		out[i] = n
	}

	return out, nil
}
