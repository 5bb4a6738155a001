package dataprep

// Column and class names of a labeled table.
const (
	LabelColumn = "label"
	Outlier     = "outlier"
	Inlier      = "inlier"
)

// outlierSentinel is the unquoted indicator value of a labeled outlier.
const outlierSentinel = "yes"

// OutlierLabel maps indicator values to class names. Only the exact sentinel
// marks an outlier; anything else, including a missing value, is an inlier.
func OutlierLabel(indicator []string) []string {
	out := make([]string, len(indicator))
	for i, v := range indicator {
		if v == outlierSentinel {
			out[i] = Outlier
		} else {
			out[i] = Inlier
		}
	}
	return out
}

// LabelEncode encodes categories as integers in order of first appearance.
func LabelEncode(data []string) ([]int, map[string]int) {
	unique := map[string]int{}
	out := make([]int, len(data))
	for i, v := range data {
		if _, ok := unique[v]; !ok {
			unique[v] = len(unique)
		}
		out[i] = unique[v]
	}
	return out, unique
}
