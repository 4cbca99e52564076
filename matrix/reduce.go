// SPDX-License-Identifier: MIT

// Package matrix - reductions used by the transport solvers.
//
// Purpose:
//   - Marginals of a plan (RowSums, ColSums), total mass (Sum).
//   - Transport cost as the Frobenius inner product (Dot).
//   - Approximate equality (AllClose) and max normalization (NormalizeMax).
//
// Determinism:
//   - Accumulation order is fixed: row-major, ascending indices.

package matrix

import "math"

// readOnly returns a row-major view for reading: the backing slice of a *Dense
// (never written through) or a flattened copy of any other Matrix.
func readOnly(op string, m Matrix) ([]float64, int, int, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, 0, 0, matrixErrorf(op, err)
	}
	if d, ok := m.(*Dense); ok {
		return d.data, d.r, d.c, nil
	}
	data, err := Flatten(m)
	if err != nil {
		return nil, 0, 0, matrixErrorf(op, err)
	}

	return data, m.Rows(), m.Cols(), nil
}

// RowSums returns s where s[i] = Σ_j m[i,j].
// Complexity: O(r*c) time, O(r) extra space.
func RowSums(m Matrix) ([]float64, error) {
	data, r, c, err := readOnly("RowSums", m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, r)
	var (
		i, j int
		acc  float64
	)
	for i = 0; i < r; i++ {
		acc = 0
		row := data[i*c : (i+1)*c]
		for j = 0; j < c; j++ {
			acc += row[j]
		}
		out[i] = acc
	}

	return out, nil
}

// ColSums returns s where s[j] = Σ_i m[i,j].
// Complexity: O(r*c) time, O(c) extra space.
func ColSums(m Matrix) ([]float64, error) {
	data, r, c, err := readOnly("ColSums", m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, c)
	var i, j int
	for i = 0; i < r; i++ {
		row := data[i*c : (i+1)*c]
		for j = 0; j < c; j++ {
			out[j] += row[j]
		}
	}

	return out, nil
}

// Sum returns the total of all entries.
func Sum(m Matrix) (float64, error) {
	data, _, _, err := readOnly("Sum", m)
	if err != nil {
		return 0, err
	}
	var acc float64
	for _, v := range data {
		acc += v
	}

	return acc, nil
}

// Dot returns the Frobenius inner product ⟨a, b⟩ = Σ_ij a[i,j]·b[i,j].
// MAIN DESCRIPTION:
//   - With a transport plan and a cost matrix this is the transport cost.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(1) for *Dense operands.
func Dot(a, b Matrix) (float64, error) {
	da, _, _, err := readOnly("Dot", a)
	if err != nil {
		return 0, err
	}
	db, _, _, err := readOnly("Dot", b)
	if err != nil {
		return 0, err
	}
	if err = ValidateSameShape(a, b); err != nil {
		return 0, matrixErrorf("Dot", err)
	}
	var acc float64
	for k := range da {
		acc += da[k] * db[k]
	}

	return acc, nil
}

// Max returns the largest entry.
func Max(m Matrix) (float64, error) {
	data, _, _, err := readOnly("Max", m)
	if err != nil {
		return 0, err
	}
	best := data[0]
	for _, v := range data[1:] {
		if v > best {
			best = v
		}
	}

	return best, nil
}

// NormalizeMax returns a copy of m divided by its largest entry.
// A matrix whose maximum is 0 is returned as an unscaled copy.
func NormalizeMax(m Matrix) (*Dense, error) {
	data, r, c, err := readOnly("NormalizeMax", m)
	if err != nil {
		return nil, err
	}
	mx, _ := Max(m)
	out := make([]float64, len(data))
	copy(out, data)
	if mx != 0 {
		for k := range out {
			out[k] /= mx
		}
	}

	return &Dense{r: r, c: c, data: out}, nil
}

// AllClose reports whether |a-b| ≤ atol + rtol·|b| holds elementwise.
// MAIN DESCRIPTION:
//   - numpy-style approximate equality used by tests and by callers comparing plans.
//
// Implementation:
//   - Stage 1: reject NaN/Inf tolerances; abs negative ones.
//   - Stage 2: nil and shape validation.
//   - Stage 3: single row-major pass, early exit on the first violation.
//
// Errors:
//   - ErrNaNInf (bad tolerance), ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	da, _, _, err := readOnly("AllClose", a)
	if err != nil {
		return false, err
	}
	db, _, _, err := readOnly("AllClose", b)
	if err != nil {
		return false, err
	}
	if err = ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	for k := range da {
		if math.Abs(da[k]-db[k]) > atol+rtol*math.Abs(db[k]) {
			return false, nil
		}
	}

	return true, nil
}
