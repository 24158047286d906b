package collector

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ajjs1ajjs/Monitoring/internal/models"
	"github.com/ajjs1ajjs/Monitoring/pkg/execx"
	"github.com/ajjs1ajjs/Monitoring/pkg/logger"
	"github.com/shirou/gopsutil/v3/process"
)

// collectWindows fills the Windows-only extension block. Only invoked when
// the agent actually runs on Windows.
func collectWindows(ctx context.Context) *models.WindowsInfo {
	info := &models.WindowsInfo{}
	if pids, err := process.PidsWithContext(ctx); err == nil {
		info.ProcessCount = len(pids)
	}
	out, err := execx.Run(ctx, 10*time.Second,
		"powershell", "-NoProfile", "-Command", "(Get-Service).Count")
	if err != nil {
		logger.Log.Warn("service count query failed", "err", err)
		return info
	}
	if n, err := strconv.Atoi(strings.TrimSpace(out)); err == nil {
		info.ServiceCount = n
	}
	return info
}
