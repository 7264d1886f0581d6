// Copyright 2025 go-spmd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spmd

// ProcessWithTail is a helper for processing arrays with SIMD that handles
// both full vectors and the tail (remainder) automatically.
//
// It calls:
//   - fullFn(offset) for each full vector (offset is the starting index)
//   - tailFn(offset, mask) once for the tail if size is not a multiple of
//     the width, with mask = FirstN(remaining)
//
// Example:
//
//	spmd.ProcessWithTail[spmd.AVX2_8](len(data),
//	    func(offset int) {
//	        v := spmd.Load[float32, spmd.AVX2_8](data[offset:])
//	        spmd.Add(v, v).Store(output[offset:])
//	    },
//	    func(offset int, m spmd.Mask[spmd.AVX2_8]) {
//	        var v spmd.Vec[float32, spmd.AVX2_8]
//	        spmd.LoadMasked(&v, data[offset:], m)
//	        spmd.StoreMasked(spmd.Add(v, v), output[offset:], m)
//	    },
//	)
func ProcessWithTail[A Arch](size int, fullFn func(offset int), tailFn func(offset int, m Mask[A])) {
	w := Width[A]()

	fullVectors := size / w
	for i := range fullVectors {
		fullFn(i * w)
	}

	remaining := size % w
	if remaining > 0 {
		tailFn(fullVectors*w, FirstN[A](remaining))
	}
}

// AlignedSize rounds up size to the next multiple of the width of A.
// This is useful for allocating buffers that will be processed in whole
// vectors.
func AlignedSize[A Arch](size int) int {
	return (size + Width[A]() - 1) &^ ShiftMask[A]()
}

// IsAligned returns true if size is a multiple of the width of A.
func IsAligned[A Arch](size int) bool {
	return size&ShiftMask[A]() == 0
}

// VecCount returns the number of vectors needed to hold n lanes.
func VecCount[A Arch](n int) int {
	return AlignedSize[A](n) >> Shift[A]()
}
