package sheets_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	sheets_v4 "google.golang.org/api/sheets/v4"

	"github.com/chaitanya2108/Google-Workspace/internal/apperrors"
	"github.com/chaitanya2108/Google-Workspace/internal/tools"
	"github.com/chaitanya2108/Google-Workspace/internal/tools/common"
)

// Values is the output of get_sheet_values.
type Values struct {
	Values  [][]any `json:"values"`
	Range   string  `json:"range"`
	NumRows int     `json:"numRows"`
}

// RangeValues is one range of a batch read.
type RangeValues struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// BatchValues is the output of batch_get_sheet_values.
type BatchValues struct {
	ValueRanges   []RangeValues `json:"valueRanges"`
	SpreadsheetID string        `json:"spreadsheetId"`
}

func readOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("majorDimension",
			mcp.Enum(majorDimensions...),
			mcp.Description("ROWS or COLUMNS (default: ROWS)"),
		),
		mcp.WithString("valueRenderOption",
			mcp.Enum(valueRenderOptions...),
			mcp.Description("How values are rendered (default: FORMATTED_VALUE)"),
		),
	}
}

func tool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	base := []mcp.ToolOption{
		mcp.WithDescription(description),
		common.AccountParam(),
		mcp.WithString("spreadsheetId",
			mcp.Required(),
			mcp.Description("ID of the spreadsheet"),
		),
	}
	return mcp.NewTool(name, append(base, opts...)...)
}

func registerValueTools(s *tools.Set, auth common.Authenticator) {
	rangeParam := mcp.WithString("range",
		mcp.Required(),
		mcp.Description("A1 notation range, e.g. Sheet1!A1:C10"),
	)
	valuesParam := mcp.WithArray("values",
		mcp.Required(),
		mcp.Description("Rows of cell values"),
	)
	inputParam := mcp.WithString("valueInputOption",
		mcp.Enum(valueInputOptions...),
		mcp.Description("How input is interpreted (default: RAW)"),
	)

	s.Add(tool("get_sheet_values", "Read values from a range",
		append([]mcp.ToolOption{rangeParam}, readOptions()...)...,
	), withServices(auth, handleGet))

	s.Add(tool("batch_get_sheet_values", "Read values from several ranges",
		append([]mcp.ToolOption{mcp.WithArray("ranges",
			mcp.Required(),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.Description("A1 notation ranges"),
		)}, readOptions()...)...,
	), withServices(auth, handleBatchGet))

	s.Add(tool("update_sheet_values", "Write values into a range",
		rangeParam, valuesParam, inputParam,
		mcp.WithString("majorDimension",
			mcp.Enum(majorDimensions...),
			mcp.Description("ROWS or COLUMNS (default: ROWS)"),
		),
	), withServices(auth, handleUpdate))

	s.Add(tool("batch_update_sheet_values", "Write values into several ranges",
		mcp.WithArray("data",
			mcp.Required(),
			mcp.Description("List of {range, values}"),
		),
		inputParam,
	), withServices(auth, handleBatchUpdate))

	s.Add(tool("append_sheet_values", "Append rows after the table found in a range",
		rangeParam, valuesParam, inputParam,
		mcp.WithString("insertDataOption",
			mcp.Enum(insertDataOptions...),
			mcp.Description("Overwrite following cells or insert new rows"),
		),
	), withServices(auth, handleAppend))
}

func handleGet(ctx context.Context, svc services, args map[string]any) *tools.Result {
	id, rng, err := idAndRange(args)
	if err != nil {
		return tools.Failure(err)
	}
	major, render, err := readArgs(args)
	if err != nil {
		return tools.Failure(err)
	}

	call := svc.sheets.Spreadsheets.Values.Get(id, rng).Context(ctx)
	if major != "" {
		call = call.MajorDimension(major)
	}
	if render != "" {
		call = call.ValueRenderOption(render)
	}
	vr, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	values := nonNil(vr.Values)
	return tools.Data(Values{Values: values, Range: vr.Range, NumRows: len(values)})
}

func handleBatchGet(ctx context.Context, svc services, args map[string]any) *tools.Result {
	id, err := common.RequireString(args, "spreadsheetId")
	if err != nil {
		return tools.Failure(err)
	}
	ranges := common.StringSlice(args, "ranges")
	if len(ranges) == 0 {
		return tools.Failure(apperrors.Validation("ranges is required"))
	}
	major, render, err := readArgs(args)
	if err != nil {
		return tools.Failure(err)
	}

	call := svc.sheets.Spreadsheets.Values.BatchGet(id).Ranges(ranges...).Context(ctx)
	if major != "" {
		call = call.MajorDimension(major)
	}
	if render != "" {
		call = call.ValueRenderOption(render)
	}
	resp, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}

	out := BatchValues{ValueRanges: make([]RangeValues, 0, len(resp.ValueRanges)), SpreadsheetID: resp.SpreadsheetId}
	for _, vr := range resp.ValueRanges {
		out.ValueRanges = append(out.ValueRanges, RangeValues{Range: vr.Range, Values: nonNil(vr.Values)})
	}
	return tools.Data(out)
}

func handleUpdate(ctx context.Context, svc services, args map[string]any) *tools.Result {
	id, rng, err := idAndRange(args)
	if err != nil {
		return tools.Failure(err)
	}
	values, err := rows(args, "values")
	if err != nil {
		return tools.Failure(err)
	}
	input, err := common.Enum(args, "valueInputOption", "RAW", valueInputOptions...)
	if err != nil {
		return tools.Failure(err)
	}
	major, err := optionalEnum(args, "majorDimension", majorDimensions...)
	if err != nil {
		return tools.Failure(err)
	}

	resp, err := svc.sheets.Spreadsheets.Values.Update(id, rng, &sheets_v4.ValueRange{Values: values, MajorDimension: major}).
		ValueInputOption(input).
		Context(ctx).
		Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Successfully updated %d cells", resp.UpdatedCells))
}

func handleBatchUpdate(ctx context.Context, svc services, args map[string]any) *tools.Result {
	id, err := common.RequireString(args, "spreadsheetId")
	if err != nil {
		return tools.Failure(err)
	}
	var data []*sheets_v4.ValueRange
	if err := common.Decode(args, "data", &data); err != nil {
		return tools.Failure(err)
	}
	if len(data) == 0 {
		return tools.Failure(apperrors.Validation("data must not be empty"))
	}
	for i, vr := range data {
		if vr == nil || vr.Range == "" {
			return tools.Failure(apperrors.Validation("data[%d].range is required", i))
		}
	}
	input, err := common.Enum(args, "valueInputOption", "RAW", valueInputOptions...)
	if err != nil {
		return tools.Failure(err)
	}

	resp, err := svc.sheets.Spreadsheets.Values.BatchUpdate(id, &sheets_v4.BatchUpdateValuesRequest{
		ValueInputOption: input,
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return tools.Failure(err)
	}
	return tools.Text(fmt.Sprintf("Successfully updated %d cells across %d ranges", resp.TotalUpdatedCells, len(data)))
}

func handleAppend(ctx context.Context, svc services, args map[string]any) *tools.Result {
	id, rng, err := idAndRange(args)
	if err != nil {
		return tools.Failure(err)
	}
	values, err := rows(args, "values")
	if err != nil {
		return tools.Failure(err)
	}
	input, err := common.Enum(args, "valueInputOption", "RAW", valueInputOptions...)
	if err != nil {
		return tools.Failure(err)
	}
	insert, err := optionalEnum(args, "insertDataOption", insertDataOptions...)
	if err != nil {
		return tools.Failure(err)
	}

	call := svc.sheets.Spreadsheets.Values.Append(id, rng, &sheets_v4.ValueRange{Values: values}).
		ValueInputOption(input).
		Context(ctx)
	if insert != "" {
		call = call.InsertDataOption(insert)
	}
	resp, err := call.Do()
	if err != nil {
		return tools.Failure(err)
	}
	var cells int64
	var updated string
	if resp.Updates != nil {
		cells, updated = resp.Updates.UpdatedCells, resp.Updates.UpdatedRange
	}
	return tools.Text(fmt.Sprintf("Successfully appended %d cells. Updated range: %s", cells, updated))
}

func idAndRange(args map[string]any) (string, string, error) {
	id, err := common.RequireString(args, "spreadsheetId")
	if err != nil {
		return "", "", err
	}
	rng, err := common.RequireString(args, "range")
	if err != nil {
		return "", "", err
	}
	return id, rng, nil
}

func readArgs(args map[string]any) (major, render string, err error) {
	if major, err = optionalEnum(args, "majorDimension", majorDimensions...); err != nil {
		return "", "", err
	}
	if render, err = optionalEnum(args, "valueRenderOption", valueRenderOptions...); err != nil {
		return "", "", err
	}
	return major, render, nil
}

// rows decodes a two-dimensional value array.
func rows(args map[string]any, key string) ([][]any, error) {
	var values [][]any
	if err := common.Decode(args, key, &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, apperrors.Validation("%s must not be empty", key)
	}
	return values, nil
}

func nonNil(v [][]any) [][]any {
	if v == nil {
		return [][]any{}
	}
	return v
}
