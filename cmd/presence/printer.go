package main

import (
	"collab-lab/domain"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type printer struct {
	out     io.Writer
	colours bool
}

var kindStyles = map[domain.ChangeKind]color.Style{
	domain.ChangeCreated: color.New(color.FgGreen, color.OpBold),
	domain.ChangeUpdated: color.New(color.FgCyan),
	domain.ChangeRemoved: color.New(color.FgRed, color.OpBold),
}

func (p printer) change(change domain.Change) {
	line := fmt.Sprintf("%s %-8s %s", change.At.Format("15:04:05"), change.Kind, describe(change.Participant))
	if style, ok := kindStyles[change.Kind]; ok && p.colours {
		line = style.Render(line)
	}
	_, _ = fmt.Fprintln(p.out, line)
}

func (p printer) info(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if p.colours {
		line = color.New(color.BgBlack, color.FgYellow).Render(line)
	}
	_, _ = fmt.Fprintln(p.out, line)
}

func (p printer) table(participants []domain.Participant, avatars map[string]domain.RenderHandle, followed string) {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Participant", "Name", "Avatar", "Position", "Rendered", "Flags"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")

	for _, participant := range participants {
		var flags []string
		if participant.Local {
			flags = append(flags, "you")
		}
		if participant.ID == followed {
			flags = append(flags, "followed")
		}
		rendered := "-"
		if handle, ok := avatars[participant.ID]; ok {
			rendered = handle.ID
			if len(rendered) > 8 {
				rendered = rendered[:8]
			}
		}
		table.Append([]string{
			participant.ID,
			participant.Name,
			participant.AvatarModel(),
			position(participant.Position),
			rendered,
			strings.Join(flags, ","),
		})
	}
	table.Render()
}

func describe(participant domain.Participant) string {
	if participant.Name == "" || participant.Name == participant.ID {
		return participant.ID
	}
	return fmt.Sprintf("%s (%s)", participant.Name, participant.ID)
}

func position(v *domain.Vector3) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f,%.1f,%.1f", v.X, v.Y, v.Z)
}
