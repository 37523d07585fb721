package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/jsonapi/encoding/jsonapi"
)

var getCmd = &cobra.Command{
	Use:     "get [path]",
	Short:   "Prints the response document of the resource endpoint without starting the server.",
	Example: `  jsonapi-example get '/articles?include=author&fields[people]=name&page[size]=2'`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, srv, err := newBlog(cfg)
		if err != nil {
			return err
		}
		target := args[0]
		if !strings.HasPrefix(target, "/") {
			target = "/" + target
		}
		req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(cmd.Context())
		req.Header.Set("Accept", jsonapi.MediaType)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", rec.Code, http.StatusText(rec.Code))
		_, err = cmd.OutOrStdout().Write(rec.Body.Bytes())
		return err
	},
}
