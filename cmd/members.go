package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/shelf/internal/lending"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
)

// MemberRegister adds a member under the configured duplicate-name policy.
func (r *Runner) MemberRegister(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		member, err := ledger.Register(name)
		if err != nil {
			return false, err
		}
		r.logger.Info("member registered", "name", member.Name, "id", member.ID)
		return true, r.writePlain("✓ Registered member: %s (%s)\n", member.Name, member.ID)
	})
}

// MemberList prints members in registration order with their holdings.
func (r *Runner) MemberList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	return r.withLibrary(ctx, func(ledger *lending.Ledger) (bool, error) {
		var views []models.MemberView
		for m := range ledger.Members() {
			views = append(views, m.View())
		}

		if useJSON {
			if views == nil {
				views = []models.MemberView{}
			}
			return false, r.writeJSON(views, pretty)
		}

		r.writePlainHeader(fmt.Sprintf("Members (%d)", len(views)))
		for _, v := range views {
			held := "nothing"
			if len(v.Held) > 0 {
				ids := make([]string, len(v.Held))
				for i, id := range v.Held {
					ids[i] = fmt.Sprintf("%d", id)
				}
				held = strings.Join(ids, ", ")
			}
			if err := r.writePlain("%s (%s) holds %s\n", v.Name, v.ID, held); err != nil {
				return false, err
			}
		}
		return false, nil
	})
}
