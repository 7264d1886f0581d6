package math

// Cephes single-precision constants.

// Float32 constants for Log
var (
	logSqrtHalf_f32 float32 = 0.707106781186547524

	logP0_f32 float32 = 7.0376836292e-2
	logP1_f32 float32 = -1.1514610310e-1
	logP2_f32 float32 = 1.1676998740e-1
	logP3_f32 float32 = -1.2420140846e-1
	logP4_f32 float32 = 1.4249322787e-1
	logP5_f32 float32 = -1.6668057665e-1
	logP6_f32 float32 = 2.0000714765e-1
	logP7_f32 float32 = -2.4999993993e-1
	logP8_f32 float32 = 3.3333331174e-1

	logQ1_f32 float32 = -2.12194440e-4
	logQ2_f32 float32 = 0.693359375
)

// Float32 constants for Exp
var (
	expHi_f32    float32 = 88.3762626647949
	expLo_f32    float32 = -88.3762626647949
	expLog2e_f32 float32 = 1.44269504088896341
	expLn2Hi_f32 float32 = 0.693359375
	expLn2Lo_f32 float32 = -2.12194440e-4

	expP0_f32 float32 = 1.9875691500e-4
	expP1_f32 float32 = 1.3981999507e-3
	expP2_f32 float32 = 8.3334519073e-3
	expP3_f32 float32 = 4.1665795894e-2
	expP4_f32 float32 = 1.6666665459e-1
	expP5_f32 float32 = 5.0000001201e-1
)

// Float32 constants for Sin and Cos
var (
	// 4/π
	trigFourOverPi_f32 float32 = 1.27323954473516

	// -π/4 split into three parts for extended-precision reduction.
	trigDP1_f32 float32 = -0.78515625
	trigDP2_f32 float32 = -2.4187564849853515625e-4
	trigDP3_f32 float32 = -3.77489497744594108e-8

	trigSinP0_f32 float32 = -1.9515295891e-4
	trigSinP1_f32 float32 = 8.3321608736e-3
	trigSinP2_f32 float32 = -1.6666654611e-1

	trigCosP0_f32 float32 = 2.443315711809948e-5
	trigCosP1_f32 float32 = -1.388731625493765e-3
	trigCosP2_f32 float32 = 4.166664568298827e-2
)

// Bit patterns shared by the kernels.
const (
	minNormPosBits  int32 = 0x00800000
	invMantMaskBits int32 = ^0x7f800000
	signMaskBits    int32 = -0x80000000
	invSignMaskBits int32 = 0x7fffffff
	expBias         int32 = 0x7f
	mantissaBits          = 23
)
