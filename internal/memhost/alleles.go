package memhost

import (
	"fmt"

	"annotation-schema/internal/allele"
	"annotation-schema/internal/schema"
)

// AltCounter returns the number of alternate alleles of a record.
type AltCounter func(d *Dataset, rec Record) (int, error)

// CountAt counts the alternate alleles as the length of the array at path.
func CountAt(path string) AltCounter {
	return func(d *Dataset, rec Record) (int, error) {
		v, err := d.Get(rec, path)
		if err != nil {
			return 0, err
		}

		arr, ok := v.([]any)
		if !ok {
			return 0, fmt.Errorf("%s: %w: %T", path, allele.ErrNotArray, v)
		}

		return len(arr), nil
	}
}

// Selector returns the surviving allele indices of a record, reference first.
type Selector func(d *Dataset, rec Record) ([]int, error)

// Keep selects the same alleles in every record.
func Keep(aIndices ...int) Selector {
	return func(*Dataset, Record) ([]int, error) {
		return aIndices, nil
	}
}

// Split emits one record per alternate allele, in input order, with the
// plan's rules applied for that allele and its dropped fields removed.
func (d *Dataset) Split(plan allele.SplitPlan, altCount AltCounter) (*Dataset, error) {
	out := &Dataset{Root: d.Root, Type: d.Type}
	if plan.Schema != nil {
		out.Type = schema.StructType(plan.Schema)
	}

	for i, rec := range d.Records {
		n, err := altCount(d, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		for aIndex := 1; aIndex <= n; aIndex++ {
			split, err := d.applyRules(rec, plan.Rules, allele.Context{AIndex: aIndex, NAltAlleles: n})
			if err != nil {
				return nil, fmt.Errorf("record %d allele %d: %w", i, aIndex, err)
			}

			for _, path := range plan.Dropped {
				rel, err := schema.RelativePath(d.Root, path)
				if err != nil {
					return nil, err
				}

				split = Delete(split, rel)
			}

			out.Records = append(out.Records, split)
		}
	}

	return out, nil
}

// Subset keeps the selected alleles of every record.
func (d *Dataset) Subset(rules []allele.Rule, keep Selector, altCount AltCounter) (*Dataset, error) {
	out := &Dataset{Root: d.Root, Type: d.Type, Records: make([]Record, len(d.Records))}

	for i, rec := range d.Records {
		n, err := altCount(d, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		aIndices, err := keep(d, rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		if out.Records[i], err = d.applyRules(rec, rules, allele.Context{AIndices: aIndices, NAltAlleles: n}); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return out, nil
}

// applyRules applies rules in order, each one seeing the previous results.
func (d *Dataset) applyRules(rec Record, rules []allele.Rule, ctx allele.Context) (Record, error) {
	for _, r := range rules {
		var getErr error

		get := func(path string) any {
			v, err := d.Get(rec, path)
			if err != nil && getErr == nil {
				getErr = err
			}

			return v
		}

		v, err := r.Apply(get, ctx)
		if err == nil {
			err = getErr
		}

		if err != nil {
			return nil, err
		}

		rel, err := schema.RelativePath(d.Root, r.Target)
		if err != nil {
			return nil, err
		}

		if v == nil && Get(rec, rel) == nil {
			continue
		}

		if rec, err = Set(rec, rel, v); err != nil {
			return nil, fmt.Errorf("%s: %w", r.Target, err)
		}
	}

	return rec, nil
}
