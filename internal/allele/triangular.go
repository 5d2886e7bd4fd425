package allele

import "math"

// Genotype is an unordered allele pair with J <= K.
type Genotype struct {
	J, K int
}

// Encode returns the triangular index of the genotype (j, k), j <= k.
func Encode(j, k int) int {
	if j > k {
		j, k = k, j
	}

	return k*(k+1)/2 + j
}

// Decode returns the genotype stored at triangular index idx. A negative idx
// names no genotype and decodes to the zero Genotype.
func Decode(idx int) Genotype {
	if idx < 0 {
		return Genotype{}
	}

	k := int((math.Sqrt(float64(8*idx+1)) - 1) / 2)

	// guard against floating point rounding on large indices
	for k*(k+1)/2 > idx {
		k--
	}

	for (k+1)*(k+2)/2 <= idx {
		k++
	}

	return Genotype{J: idx - k*(k+1)/2, K: k}
}

// GenotypeCount returns the length of a G-based array for nAllele alleles,
// reference included: C(nAllele+1, 2).
func GenotypeCount(nAllele int) int {
	return nAllele * (nAllele + 1) / 2
}

// Genotypes lists the genotypes of nAllele alleles in index order.
func Genotypes(nAllele int) []Genotype {
	out := make([]Genotype, GenotypeCount(nAllele))
	for i := range out {
		out[i] = Decode(i)
	}

	return out
}
