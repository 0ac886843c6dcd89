package cmd

import (
	"fmt"

	"object-resolver/feature/transfer"

	"github.com/spf13/cobra"
)

func newTransferService() (*transfer.Service, error) {
	rt, err := newRuntime()
	if err != nil {
		return nil, err
	}
	return transfer.NewService(rt.client, nil, rt.bucket(), rt.logger, nil), nil
}

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <key> <path>",
	Short: "Download an object to a local file",
	Long:  `Streams the object into path, creating missing parent directories. A failed download leaves no partial file behind.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTransferService()
		if err != nil {
			return err
		}
		_, err = svc.DownloadToFile(cmd.Context(), "", args[0], args[1])
		return err
	},
}

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <path> <key>",
	Short: "Upload a local file as an object",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTransferService()
		if err != nil {
			return err
		}
		_, err = svc.UploadFile(cmd.Context(), "", args[1], args[0])
		return err
	},
}

// sizeCmd represents the size command
var sizeCmd = &cobra.Command{
	Use:   "size <key>",
	Short: "Print the size of an object in bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newTransferService()
		if err != nil {
			return err
		}
		size, err := svc.ObjectSize(cmd.Context(), "", args[0])
		if err != nil {
			return err
		}
		fmt.Println(size)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd, uploadCmd, sizeCmd)
}
