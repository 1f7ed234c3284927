package system_stats

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// DiskFree returns the fraction of the filesystem at path that is free, in
// [0.0, 1.0].
func DiskFree(path string) (float64, error) {
	var fsInfo unix.Statfs_t
	err := unix.Statfs(path, &fsInfo)
	if err != nil {
		return 0, err
	}

	// This is specifically the blocks available to unprivileged users (as
	// we will not be running as root). It will be lower than `df`.
	return float64(fsInfo.Bavail) / float64(fsInfo.Blocks), nil
}

// Mount reports free space for a single mounted filesystem.
type Mount struct {
	path string
}

func NewMount(path string) *Mount {
	return &Mount{
		path: path,
	}
}

// FreeRatio returns the free-space ratio of the mount, erroring when the
// configured path is not a mount point or the OS query fails.
func (m *Mount) FreeRatio() (float64, error) {
	partitions, err := disk.Partitions(true)
	if err != nil {
		return 0, fmt.Errorf("unable to list mounts: %w", err)
	}

	for _, partition := range partitions {
		if partition.Mountpoint == m.path {
			return DiskFree(m.path)
		}
	}

	return 0, fmt.Errorf("unable to find mount %q", m.path)
}
