package defs

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"showdown-bot/commands"
	"showdown-bot/utils"
)

// sysinfo reports host and process statistics, staff only.
func (d *Deps) sysinfo(ctx *commands.Context) error {
	if !ctx.Room.IsPM() && !utils.RankAtLeast(ctx.User.RankIn(ctx.Room.TargetID()), "%") {
		return nil
	}

	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	usage := 0.0
	if len(cpuPercent) > 0 {
		usage = cpuPercent[0]
	}
	platform := "unknown"
	if hostInfo != nil {
		platform = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
	}
	memLine := "n/a"
	if vm != nil {
		memLine = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	ctx.Say(fmt.Sprintf("OS: %s | Go: %s | CPUs: %d at %.1f%% | Mem: %s | Goroutines: %d",
		platform, runtime.Version(), cpuCount, usage, memLine, runtime.NumGoroutine()))
	return nil
}
