package model

// Volume describes the filesystem holding a scanned path
type Volume struct {
	Path       string
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this volume
func (v Volume) UsedBytes() int64 {
	return v.TotalBytes - v.FreeBytes
}

// UsedPercent returns percentage of the volume used
func (v Volume) UsedPercent() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes()) / float64(v.TotalBytes) * 100
}

// VolumeUsage returns disk space information for the filesystem containing path.
// ok is false when the platform can't report it.
func VolumeUsage(path string) (v Volume, ok bool) {
	total, free := getDiskSpace(path)
	if total <= 0 {
		return Volume{Path: path}, false
	}
	return Volume{Path: path, TotalBytes: total, FreeBytes: free}, true
}
