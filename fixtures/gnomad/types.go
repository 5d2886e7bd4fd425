// Package gnomad declares annotated Go types mirroring the variant schema of
// a population release. It is loaded by the analyze tests.
package gnomad

// Impact is the VEP impact rating of a consequence.
type Impact string

// Variant is the variant annotation root.
type Variant struct {
	RSID    string              `va:"rsid"`
	Qual    float64             `va:"qual"`
	Filters map[string]struct{} `va:"filters"`
	Info    Info                `va:"info"`
	VEP     *VEP                `va:"vep"`

	Debug string `va:"-"`
	cache map[string]int
}

// Info holds the INFO column annotations.
type Info struct {
	AC              []int32               `va:"AC,Number=A,Description=Allele count in genotypes"`
	AF              []float64             `va:"AF,Number=A"`
	AN              int32                 `va:"AN,Number=1"`
	AD              []int                 `va:"AD,Number=R"`
	PL              []int                 `va:"PL,Number=G"`
	ASFilterStatus  []map[string]struct{} `va:"AS_FilterStatus,Number=A"`
	DB              bool                  `va:"DB,Number=0"`
	InbreedingCoeff float32
	GQHist          [10]int64 `va:"GQ_HIST_ALL"`
}

// VEP holds the VEP annotations of a variant.
type VEP struct {
	Provenance
	TranscriptConsequences []Consequence `va:"transcript_consequences"`
}

// Provenance records how the annotations were produced.
type Provenance struct {
	Version string `va:"vep_version"`
}

// Consequence is one transcript consequence.
type Consequence struct {
	AlleleNum  int    `va:"allele_num"`
	GeneSymbol string `va:"gene_symbol"`
	Impact     Impact `va:"impact"`
}

// Node is a self-referencing type; it cannot be turned into a schema.
type Node struct {
	Value int
	Next  *Node
}

// Bad holds a field type with no annotation counterpart.
type Bad struct {
	Ch chan int
}
