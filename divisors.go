package stepwise

// pupilDivisors lists, for each integer up to 100, the divisors a pupil
// spots by inspection: the times-table divisors up to 10, 25 and 50, and the
// number itself. Index 0 and 1 have no entries.
var pupilDivisors = [...][]int64{
	0:   nil,
	1:   nil,
	2:   {2},
	3:   {3},
	4:   {2, 4},
	5:   {5},
	6:   {2, 3, 6},
	7:   {7},
	8:   {2, 4, 8},
	9:   {3, 9},
	10:  {2, 5, 10},
	11:  {11},
	12:  {2, 3, 4, 6, 12},
	13:  {13},
	14:  {2, 7, 14},
	15:  {3, 5, 15},
	16:  {2, 4, 8, 16},
	17:  {17},
	18:  {2, 3, 6, 9, 18},
	19:  {19},
	20:  {2, 4, 5, 10, 20},
	21:  {3, 7, 21},
	22:  {2, 22},
	23:  {23},
	24:  {2, 3, 4, 6, 8, 24},
	25:  {5, 25},
	26:  {2, 26},
	27:  {3, 9, 27},
	28:  {2, 4, 7, 28},
	29:  {29},
	30:  {2, 3, 5, 6, 10, 30},
	31:  {31},
	32:  {2, 4, 8, 32},
	33:  {3, 33},
	34:  {2, 34},
	35:  {5, 7, 35},
	36:  {2, 3, 4, 6, 9, 36},
	37:  {37},
	38:  {2, 38},
	39:  {3, 39},
	40:  {2, 4, 5, 8, 10, 40},
	41:  {41},
	42:  {2, 3, 6, 7, 42},
	43:  {43},
	44:  {2, 4, 44},
	45:  {3, 5, 9, 45},
	46:  {2, 46},
	47:  {47},
	48:  {2, 3, 4, 6, 8, 48},
	49:  {7, 49},
	50:  {2, 5, 10, 25, 50},
	51:  {3, 51},
	52:  {2, 4, 52},
	53:  {53},
	54:  {2, 3, 6, 9, 54},
	55:  {5, 55},
	56:  {2, 4, 7, 8, 56},
	57:  {3, 57},
	58:  {2, 58},
	59:  {59},
	60:  {2, 3, 4, 5, 6, 10, 60},
	61:  {61},
	62:  {2, 62},
	63:  {3, 7, 9, 63},
	64:  {2, 4, 8, 64},
	65:  {5, 65},
	66:  {2, 3, 6, 66},
	67:  {67},
	68:  {2, 4, 68},
	69:  {3, 69},
	70:  {2, 5, 7, 10, 70},
	71:  {71},
	72:  {2, 3, 4, 6, 8, 9, 72},
	73:  {73},
	74:  {2, 74},
	75:  {3, 5, 25, 75},
	76:  {2, 4, 76},
	77:  {7, 77},
	78:  {2, 3, 6, 78},
	79:  {79},
	80:  {2, 4, 5, 8, 10, 80},
	81:  {3, 9, 81},
	82:  {2, 82},
	83:  {83},
	84:  {2, 3, 4, 6, 7, 84},
	85:  {5, 85},
	86:  {2, 86},
	87:  {3, 87},
	88:  {2, 4, 8, 88},
	89:  {89},
	90:  {2, 3, 5, 6, 9, 10, 90},
	91:  {7, 91},
	92:  {2, 4, 92},
	93:  {3, 93},
	94:  {2, 94},
	95:  {5, 95},
	96:  {2, 3, 4, 6, 8, 96},
	97:  {97},
	98:  {2, 7, 98},
	99:  {3, 9, 99},
	100: {2, 4, 5, 10, 25, 50, 100},
}
