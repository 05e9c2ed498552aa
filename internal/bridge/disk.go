package bridge

import "syscall"

// diskUsage returns disk usage stats for the given path, or nil on error.
// The frame output directory fills up fast on a small boot SD card, so the
// bridge surfaces the numbers alongside its own status.
func diskUsage(path string) map[string]any {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return nil
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bfree * uint64(stat.Bsize)
	used := total - free
	return map[string]any{
		"total_bytes":     total,
		"used_bytes":      used,
		"available_bytes": free,
	}
}
