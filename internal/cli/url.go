package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/freenight/internal/booking"
	"github.com/MrSnakeDoc/freenight/internal/domain"
)

func newURLCmd() *cobra.Command {
	var hotel, group, date string

	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the booking URL for one arrival date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if hotel == "" || group == "" {
				return errors.New("--hotel and --group are required")
			}
			arrival, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), booking.BuildURL(hotel, arrival, group))
			return err
		},
	}

	cmd.Flags().StringVar(&hotel, "hotel", "", "hotel code, e.g. SINGI")
	cmd.Flags().StringVar(&group, "group", "", "voucher group code, e.g. ZKFA25")
	cmd.Flags().StringVar(&date, "date", "", "arrival date (YYYY-MM-DD)")
	return cmd
}
