package simd

// table lists every fixed-width and relaxed SIMD instruction in sub-opcode order.
var table = [...]Op{
	{0x00, "v128.load", ShapeV128, ClassMemory, false},
	{0x01, "v128.load8x8_s", ShapeV128, ClassMemory, false},
	{0x02, "v128.load8x8_u", ShapeV128, ClassMemory, false},
	{0x03, "v128.load16x4_s", ShapeV128, ClassMemory, false},
	{0x04, "v128.load16x4_u", ShapeV128, ClassMemory, false},
	{0x05, "v128.load32x2_s", ShapeV128, ClassMemory, false},
	{0x06, "v128.load32x2_u", ShapeV128, ClassMemory, false},
	{0x07, "v128.load8_splat", ShapeV128, ClassMemory, false},
	{0x08, "v128.load16_splat", ShapeV128, ClassMemory, false},
	{0x09, "v128.load32_splat", ShapeV128, ClassMemory, false},
	{0x0a, "v128.load64_splat", ShapeV128, ClassMemory, false},
	{0x0b, "v128.store", ShapeV128, ClassMemory, false},
	{0x0c, "v128.const", ShapeV128, ClassConstant, false},
	{0x0d, "i8x16.shuffle", ShapeI8x16, ClassShuffle, false},
	{0x0e, "i8x16.swizzle", ShapeI8x16, ClassShuffle, false},
	{0x0f, "i8x16.splat", ShapeI8x16, ClassLane, false},
	{0x10, "i16x8.splat", ShapeI16x8, ClassLane, false},
	{0x11, "i32x4.splat", ShapeI32x4, ClassLane, false},
	{0x12, "i64x2.splat", ShapeI64x2, ClassLane, false},
	{0x13, "f32x4.splat", ShapeF32x4, ClassLane, false},
	{0x14, "f64x2.splat", ShapeF64x2, ClassLane, false},
	{0x15, "i8x16.extract_lane_s", ShapeI8x16, ClassLane, false},
	{0x16, "i8x16.extract_lane_u", ShapeI8x16, ClassLane, false},
	{0x17, "i8x16.replace_lane", ShapeI8x16, ClassLane, false},
	{0x18, "i16x8.extract_lane_s", ShapeI16x8, ClassLane, false},
	{0x19, "i16x8.extract_lane_u", ShapeI16x8, ClassLane, false},
	{0x1a, "i16x8.replace_lane", ShapeI16x8, ClassLane, false},
	{0x1b, "i32x4.extract_lane", ShapeI32x4, ClassLane, false},
	{0x1c, "i32x4.replace_lane", ShapeI32x4, ClassLane, false},
	{0x1d, "i64x2.extract_lane", ShapeI64x2, ClassLane, false},
	{0x1e, "i64x2.replace_lane", ShapeI64x2, ClassLane, false},
	{0x1f, "f32x4.extract_lane", ShapeF32x4, ClassLane, false},
	{0x20, "f32x4.replace_lane", ShapeF32x4, ClassLane, false},
	{0x21, "f64x2.extract_lane", ShapeF64x2, ClassLane, false},
	{0x22, "f64x2.replace_lane", ShapeF64x2, ClassLane, false},
	{0x23, "i8x16.eq", ShapeI8x16, ClassCompare, false},
	{0x24, "i8x16.ne", ShapeI8x16, ClassCompare, false},
	{0x25, "i8x16.lt_s", ShapeI8x16, ClassCompare, false},
	{0x26, "i8x16.lt_u", ShapeI8x16, ClassCompare, false},
	{0x27, "i8x16.gt_s", ShapeI8x16, ClassCompare, false},
	{0x28, "i8x16.gt_u", ShapeI8x16, ClassCompare, false},
	{0x29, "i8x16.le_s", ShapeI8x16, ClassCompare, false},
	{0x2a, "i8x16.le_u", ShapeI8x16, ClassCompare, false},
	{0x2b, "i8x16.ge_s", ShapeI8x16, ClassCompare, false},
	{0x2c, "i8x16.ge_u", ShapeI8x16, ClassCompare, false},
	{0x2d, "i16x8.eq", ShapeI16x8, ClassCompare, false},
	{0x2e, "i16x8.ne", ShapeI16x8, ClassCompare, false},
	{0x2f, "i16x8.lt_s", ShapeI16x8, ClassCompare, false},
	{0x30, "i16x8.lt_u", ShapeI16x8, ClassCompare, false},
	{0x31, "i16x8.gt_s", ShapeI16x8, ClassCompare, false},
	{0x32, "i16x8.gt_u", ShapeI16x8, ClassCompare, false},
	{0x33, "i16x8.le_s", ShapeI16x8, ClassCompare, false},
	{0x34, "i16x8.le_u", ShapeI16x8, ClassCompare, false},
	{0x35, "i16x8.ge_s", ShapeI16x8, ClassCompare, false},
	{0x36, "i16x8.ge_u", ShapeI16x8, ClassCompare, false},
	{0x37, "i32x4.eq", ShapeI32x4, ClassCompare, false},
	{0x38, "i32x4.ne", ShapeI32x4, ClassCompare, false},
	{0x39, "i32x4.lt_s", ShapeI32x4, ClassCompare, false},
	{0x3a, "i32x4.lt_u", ShapeI32x4, ClassCompare, false},
	{0x3b, "i32x4.gt_s", ShapeI32x4, ClassCompare, false},
	{0x3c, "i32x4.gt_u", ShapeI32x4, ClassCompare, false},
	{0x3d, "i32x4.le_s", ShapeI32x4, ClassCompare, false},
	{0x3e, "i32x4.le_u", ShapeI32x4, ClassCompare, false},
	{0x3f, "i32x4.ge_s", ShapeI32x4, ClassCompare, false},
	{0x40, "i32x4.ge_u", ShapeI32x4, ClassCompare, false},
	{0x41, "f32x4.eq", ShapeF32x4, ClassCompare, false},
	{0x42, "f32x4.ne", ShapeF32x4, ClassCompare, false},
	{0x43, "f32x4.lt", ShapeF32x4, ClassCompare, false},
	{0x44, "f32x4.gt", ShapeF32x4, ClassCompare, false},
	{0x45, "f32x4.le", ShapeF32x4, ClassCompare, false},
	{0x46, "f32x4.ge", ShapeF32x4, ClassCompare, false},
	{0x47, "f64x2.eq", ShapeF64x2, ClassCompare, false},
	{0x48, "f64x2.ne", ShapeF64x2, ClassCompare, false},
	{0x49, "f64x2.lt", ShapeF64x2, ClassCompare, false},
	{0x4a, "f64x2.gt", ShapeF64x2, ClassCompare, false},
	{0x4b, "f64x2.le", ShapeF64x2, ClassCompare, false},
	{0x4c, "f64x2.ge", ShapeF64x2, ClassCompare, false},
	{0x4d, "v128.not", ShapeV128, ClassBitwise, false},
	{0x4e, "v128.and", ShapeV128, ClassBitwise, false},
	{0x4f, "v128.andnot", ShapeV128, ClassBitwise, false},
	{0x50, "v128.or", ShapeV128, ClassBitwise, false},
	{0x51, "v128.xor", ShapeV128, ClassBitwise, false},
	{0x52, "v128.bitselect", ShapeV128, ClassBitwise, false},
	{0x53, "v128.any_true", ShapeV128, ClassBitwise, false},
	{0x54, "v128.load8_lane", ShapeV128, ClassMemory, false},
	{0x55, "v128.load16_lane", ShapeV128, ClassMemory, false},
	{0x56, "v128.load32_lane", ShapeV128, ClassMemory, false},
	{0x57, "v128.load64_lane", ShapeV128, ClassMemory, false},
	{0x58, "v128.store8_lane", ShapeV128, ClassMemory, false},
	{0x59, "v128.store16_lane", ShapeV128, ClassMemory, false},
	{0x5a, "v128.store32_lane", ShapeV128, ClassMemory, false},
	{0x5b, "v128.store64_lane", ShapeV128, ClassMemory, false},
	{0x5c, "v128.load32_zero", ShapeV128, ClassMemory, false},
	{0x5d, "v128.load64_zero", ShapeV128, ClassMemory, false},
	{0x5e, "f32x4.demote_f64x2_zero", ShapeF32x4, ClassConversion, false},
	{0x5f, "f64x2.promote_low_f32x4", ShapeF64x2, ClassConversion, false},
	{0x60, "i8x16.abs", ShapeI8x16, ClassArithmetic, false},
	{0x61, "i8x16.neg", ShapeI8x16, ClassArithmetic, false},
	{0x62, "i8x16.popcnt", ShapeI8x16, ClassArithmetic, false},
	{0x63, "i8x16.all_true", ShapeI8x16, ClassBitwise, false},
	{0x64, "i8x16.bitmask", ShapeI8x16, ClassBitwise, false},
	{0x65, "i8x16.narrow_i16x8_s", ShapeI8x16, ClassConversion, false},
	{0x66, "i8x16.narrow_i16x8_u", ShapeI8x16, ClassConversion, false},
	{0x67, "f32x4.ceil", ShapeF32x4, ClassArithmetic, false},
	{0x68, "f32x4.floor", ShapeF32x4, ClassArithmetic, false},
	{0x69, "f32x4.trunc", ShapeF32x4, ClassArithmetic, false},
	{0x6a, "f32x4.nearest", ShapeF32x4, ClassArithmetic, false},
	{0x6b, "i8x16.shl", ShapeI8x16, ClassBitwise, false},
	{0x6c, "i8x16.shr_s", ShapeI8x16, ClassBitwise, false},
	{0x6d, "i8x16.shr_u", ShapeI8x16, ClassBitwise, false},
	{0x6e, "i8x16.add", ShapeI8x16, ClassArithmetic, false},
	{0x6f, "i8x16.add_sat_s", ShapeI8x16, ClassArithmetic, false},
	{0x70, "i8x16.add_sat_u", ShapeI8x16, ClassArithmetic, false},
	{0x71, "i8x16.sub", ShapeI8x16, ClassArithmetic, false},
	{0x72, "i8x16.sub_sat_s", ShapeI8x16, ClassArithmetic, false},
	{0x73, "i8x16.sub_sat_u", ShapeI8x16, ClassArithmetic, false},
	{0x74, "f64x2.ceil", ShapeF64x2, ClassArithmetic, false},
	{0x75, "f64x2.floor", ShapeF64x2, ClassArithmetic, false},
	{0x76, "i8x16.min_s", ShapeI8x16, ClassArithmetic, false},
	{0x77, "i8x16.min_u", ShapeI8x16, ClassArithmetic, false},
	{0x78, "i8x16.max_s", ShapeI8x16, ClassArithmetic, false},
	{0x79, "i8x16.max_u", ShapeI8x16, ClassArithmetic, false},
	{0x7a, "f64x2.trunc", ShapeF64x2, ClassArithmetic, false},
	{0x7b, "i8x16.avgr_u", ShapeI8x16, ClassArithmetic, false},
	{0x7c, "i16x8.extadd_pairwise_i8x16_s", ShapeI16x8, ClassArithmetic, false},
	{0x7d, "i16x8.extadd_pairwise_i8x16_u", ShapeI16x8, ClassArithmetic, false},
	{0x7e, "i32x4.extadd_pairwise_i16x8_s", ShapeI32x4, ClassArithmetic, false},
	{0x7f, "i32x4.extadd_pairwise_i16x8_u", ShapeI32x4, ClassArithmetic, false},
	{0x80, "i16x8.abs", ShapeI16x8, ClassArithmetic, false},
	{0x81, "i16x8.neg", ShapeI16x8, ClassArithmetic, false},
	{0x82, "i16x8.q15mulr_sat_s", ShapeI16x8, ClassArithmetic, false},
	{0x83, "i16x8.all_true", ShapeI16x8, ClassBitwise, false},
	{0x84, "i16x8.bitmask", ShapeI16x8, ClassBitwise, false},
	{0x85, "i16x8.narrow_i32x4_s", ShapeI16x8, ClassConversion, false},
	{0x86, "i16x8.narrow_i32x4_u", ShapeI16x8, ClassConversion, false},
	{0x87, "i16x8.extend_low_i8x16_s", ShapeI16x8, ClassConversion, false},
	{0x88, "i16x8.extend_high_i8x16_s", ShapeI16x8, ClassConversion, false},
	{0x89, "i16x8.extend_low_i8x16_u", ShapeI16x8, ClassConversion, false},
	{0x8a, "i16x8.extend_high_i8x16_u", ShapeI16x8, ClassConversion, false},
	{0x8b, "i16x8.shl", ShapeI16x8, ClassBitwise, false},
	{0x8c, "i16x8.shr_s", ShapeI16x8, ClassBitwise, false},
	{0x8d, "i16x8.shr_u", ShapeI16x8, ClassBitwise, false},
	{0x8e, "i16x8.add", ShapeI16x8, ClassArithmetic, false},
	{0x8f, "i16x8.add_sat_s", ShapeI16x8, ClassArithmetic, false},
	{0x90, "i16x8.add_sat_u", ShapeI16x8, ClassArithmetic, false},
	{0x91, "i16x8.sub", ShapeI16x8, ClassArithmetic, false},
	{0x92, "i16x8.sub_sat_s", ShapeI16x8, ClassArithmetic, false},
	{0x93, "i16x8.sub_sat_u", ShapeI16x8, ClassArithmetic, false},
	{0x94, "f64x2.nearest", ShapeF64x2, ClassArithmetic, false},
	{0x95, "i16x8.mul", ShapeI16x8, ClassArithmetic, false},
	{0x96, "i16x8.min_s", ShapeI16x8, ClassArithmetic, false},
	{0x97, "i16x8.min_u", ShapeI16x8, ClassArithmetic, false},
	{0x98, "i16x8.max_s", ShapeI16x8, ClassArithmetic, false},
	{0x99, "i16x8.max_u", ShapeI16x8, ClassArithmetic, false},
	{0x9b, "i16x8.avgr_u", ShapeI16x8, ClassArithmetic, false},
	{0x9c, "i16x8.extmul_low_i8x16_s", ShapeI16x8, ClassArithmetic, false},
	{0x9d, "i16x8.extmul_high_i8x16_s", ShapeI16x8, ClassArithmetic, false},
	{0x9e, "i16x8.extmul_low_i8x16_u", ShapeI16x8, ClassArithmetic, false},
	{0x9f, "i16x8.extmul_high_i8x16_u", ShapeI16x8, ClassArithmetic, false},
	{0xa0, "i32x4.abs", ShapeI32x4, ClassArithmetic, false},
	{0xa1, "i32x4.neg", ShapeI32x4, ClassArithmetic, false},
	{0xa3, "i32x4.all_true", ShapeI32x4, ClassBitwise, false},
	{0xa4, "i32x4.bitmask", ShapeI32x4, ClassBitwise, false},
	{0xa7, "i32x4.extend_low_i16x8_s", ShapeI32x4, ClassConversion, false},
	{0xa8, "i32x4.extend_high_i16x8_s", ShapeI32x4, ClassConversion, false},
	{0xa9, "i32x4.extend_low_i16x8_u", ShapeI32x4, ClassConversion, false},
	{0xaa, "i32x4.extend_high_i16x8_u", ShapeI32x4, ClassConversion, false},
	{0xab, "i32x4.shl", ShapeI32x4, ClassBitwise, false},
	{0xac, "i32x4.shr_s", ShapeI32x4, ClassBitwise, false},
	{0xad, "i32x4.shr_u", ShapeI32x4, ClassBitwise, false},
	{0xae, "i32x4.add", ShapeI32x4, ClassArithmetic, false},
	{0xb1, "i32x4.sub", ShapeI32x4, ClassArithmetic, false},
	{0xb5, "i32x4.mul", ShapeI32x4, ClassArithmetic, false},
	{0xb6, "i32x4.min_s", ShapeI32x4, ClassArithmetic, false},
	{0xb7, "i32x4.min_u", ShapeI32x4, ClassArithmetic, false},
	{0xb8, "i32x4.max_s", ShapeI32x4, ClassArithmetic, false},
	{0xb9, "i32x4.max_u", ShapeI32x4, ClassArithmetic, false},
	{0xba, "i32x4.dot_i16x8_s", ShapeI32x4, ClassArithmetic, false},
	{0xbc, "i32x4.extmul_low_i16x8_s", ShapeI32x4, ClassArithmetic, false},
	{0xbd, "i32x4.extmul_high_i16x8_s", ShapeI32x4, ClassArithmetic, false},
	{0xbe, "i32x4.extmul_low_i16x8_u", ShapeI32x4, ClassArithmetic, false},
	{0xbf, "i32x4.extmul_high_i16x8_u", ShapeI32x4, ClassArithmetic, false},
	{0xc0, "i64x2.abs", ShapeI64x2, ClassArithmetic, false},
	{0xc1, "i64x2.neg", ShapeI64x2, ClassArithmetic, false},
	{0xc3, "i64x2.all_true", ShapeI64x2, ClassBitwise, false},
	{0xc4, "i64x2.bitmask", ShapeI64x2, ClassBitwise, false},
	{0xc7, "i64x2.extend_low_i32x4_s", ShapeI64x2, ClassConversion, false},
	{0xc8, "i64x2.extend_high_i32x4_s", ShapeI64x2, ClassConversion, false},
	{0xc9, "i64x2.extend_low_i32x4_u", ShapeI64x2, ClassConversion, false},
	{0xca, "i64x2.extend_high_i32x4_u", ShapeI64x2, ClassConversion, false},
	{0xcb, "i64x2.shl", ShapeI64x2, ClassBitwise, false},
	{0xcc, "i64x2.shr_s", ShapeI64x2, ClassBitwise, false},
	{0xcd, "i64x2.shr_u", ShapeI64x2, ClassBitwise, false},
	{0xce, "i64x2.add", ShapeI64x2, ClassArithmetic, false},
	{0xd1, "i64x2.sub", ShapeI64x2, ClassArithmetic, false},
	{0xd5, "i64x2.mul", ShapeI64x2, ClassArithmetic, false},
	{0xd6, "i64x2.eq", ShapeI64x2, ClassCompare, false},
	{0xd7, "i64x2.ne", ShapeI64x2, ClassCompare, false},
	{0xd8, "i64x2.lt_s", ShapeI64x2, ClassCompare, false},
	{0xd9, "i64x2.gt_s", ShapeI64x2, ClassCompare, false},
	{0xda, "i64x2.le_s", ShapeI64x2, ClassCompare, false},
	{0xdb, "i64x2.ge_s", ShapeI64x2, ClassCompare, false},
	{0xdc, "i64x2.extmul_low_i32x4_s", ShapeI64x2, ClassArithmetic, false},
	{0xdd, "i64x2.extmul_high_i32x4_s", ShapeI64x2, ClassArithmetic, false},
	{0xde, "i64x2.extmul_low_i32x4_u", ShapeI64x2, ClassArithmetic, false},
	{0xdf, "i64x2.extmul_high_i32x4_u", ShapeI64x2, ClassArithmetic, false},
	{0xe0, "f32x4.abs", ShapeF32x4, ClassArithmetic, false},
	{0xe1, "f32x4.neg", ShapeF32x4, ClassArithmetic, false},
	{0xe3, "f32x4.sqrt", ShapeF32x4, ClassArithmetic, false},
	{0xe4, "f32x4.add", ShapeF32x4, ClassArithmetic, false},
	{0xe5, "f32x4.sub", ShapeF32x4, ClassArithmetic, false},
	{0xe6, "f32x4.mul", ShapeF32x4, ClassArithmetic, false},
	{0xe7, "f32x4.div", ShapeF32x4, ClassArithmetic, false},
	{0xe8, "f32x4.min", ShapeF32x4, ClassArithmetic, false},
	{0xe9, "f32x4.max", ShapeF32x4, ClassArithmetic, false},
	{0xea, "f32x4.pmin", ShapeF32x4, ClassArithmetic, false},
	{0xeb, "f32x4.pmax", ShapeF32x4, ClassArithmetic, false},
	{0xec, "f64x2.abs", ShapeF64x2, ClassArithmetic, false},
	{0xed, "f64x2.neg", ShapeF64x2, ClassArithmetic, false},
	{0xef, "f64x2.sqrt", ShapeF64x2, ClassArithmetic, false},
	{0xf0, "f64x2.add", ShapeF64x2, ClassArithmetic, false},
	{0xf1, "f64x2.sub", ShapeF64x2, ClassArithmetic, false},
	{0xf2, "f64x2.mul", ShapeF64x2, ClassArithmetic, false},
	{0xf3, "f64x2.div", ShapeF64x2, ClassArithmetic, false},
	{0xf4, "f64x2.min", ShapeF64x2, ClassArithmetic, false},
	{0xf5, "f64x2.max", ShapeF64x2, ClassArithmetic, false},
	{0xf6, "f64x2.pmin", ShapeF64x2, ClassArithmetic, false},
	{0xf7, "f64x2.pmax", ShapeF64x2, ClassArithmetic, false},
	{0xf8, "i32x4.trunc_sat_f32x4_s", ShapeI32x4, ClassConversion, false},
	{0xf9, "i32x4.trunc_sat_f32x4_u", ShapeI32x4, ClassConversion, false},
	{0xfa, "f32x4.convert_i32x4_s", ShapeF32x4, ClassConversion, false},
	{0xfb, "f32x4.convert_i32x4_u", ShapeF32x4, ClassConversion, false},
	{0xfc, "i32x4.trunc_sat_f64x2_s_zero", ShapeI32x4, ClassConversion, false},
	{0xfd, "i32x4.trunc_sat_f64x2_u_zero", ShapeI32x4, ClassConversion, false},
	{0xfe, "f64x2.convert_low_i32x4_s", ShapeF64x2, ClassConversion, false},
	{0xff, "f64x2.convert_low_i32x4_u", ShapeF64x2, ClassConversion, false},
	{0x100, "i8x16.relaxed_swizzle", ShapeI8x16, ClassShuffle, true},
	{0x101, "i32x4.relaxed_trunc_f32x4_s", ShapeI32x4, ClassConversion, true},
	{0x102, "i32x4.relaxed_trunc_f32x4_u", ShapeI32x4, ClassConversion, true},
	{0x103, "i32x4.relaxed_trunc_f64x2_s_zero", ShapeI32x4, ClassConversion, true},
	{0x104, "i32x4.relaxed_trunc_f64x2_u_zero", ShapeI32x4, ClassConversion, true},
	{0x105, "f32x4.relaxed_madd", ShapeF32x4, ClassArithmetic, true},
	{0x106, "f32x4.relaxed_nmadd", ShapeF32x4, ClassArithmetic, true},
	{0x107, "f64x2.relaxed_madd", ShapeF64x2, ClassArithmetic, true},
	{0x108, "f64x2.relaxed_nmadd", ShapeF64x2, ClassArithmetic, true},
	{0x109, "i8x16.relaxed_laneselect", ShapeI8x16, ClassBitwise, true},
	{0x10a, "i16x8.relaxed_laneselect", ShapeI16x8, ClassBitwise, true},
	{0x10b, "i32x4.relaxed_laneselect", ShapeI32x4, ClassBitwise, true},
	{0x10c, "i64x2.relaxed_laneselect", ShapeI64x2, ClassBitwise, true},
	{0x10d, "f32x4.relaxed_min", ShapeF32x4, ClassArithmetic, true},
	{0x10e, "f32x4.relaxed_max", ShapeF32x4, ClassArithmetic, true},
	{0x10f, "f64x2.relaxed_min", ShapeF64x2, ClassArithmetic, true},
	{0x110, "f64x2.relaxed_max", ShapeF64x2, ClassArithmetic, true},
	{0x111, "i16x8.relaxed_q15mulr_s", ShapeI16x8, ClassArithmetic, true},
	{0x112, "i16x8.relaxed_dot_i8x16_i7x16_s", ShapeI16x8, ClassArithmetic, true},
	{0x113, "i32x4.relaxed_dot_i8x16_i7x16_add_s", ShapeI32x4, ClassArithmetic, true},
}
