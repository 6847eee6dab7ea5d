package printer

// TemperatureReadings mirrors the payload returned by
// /api/printer/status?action=temperature.
type TemperatureReadings struct {
	HotendTemp   float64 `json:"hotend_temp"`
	HotendTarget float64 `json:"hotend_target"`
	BedTemp      float64 `json:"bed_temp"`
	BedTarget    float64 `json:"bed_target"`
}

// PrintProgress mirrors the payload returned by /api/printer/sd?action=progress.
type PrintProgress struct {
	Printing     bool    `json:"printing"`
	Filename     string  `json:"filename"`
	Percent      float64 `json:"percent"`
	BytesPrinted int64   `json:"bytes_printed"`
	TotalBytes   int64   `json:"total_bytes"`
}

// SDFile describes one entry of the printer's SD card listing. Size is a
// pointer because older firmware omits it for directories.
type SDFile struct {
	Name string `json:"name"`
	Size *int64 `json:"size,omitempty"`
}

// sdListResponse mirrors /api/printer/sd?action=list.
type sdListResponse struct {
	Files []SDFile `json:"files"`
}

// Request bodies. Field names are the printer's wire contract and must not
// change.

type temperatureRequest struct {
	Action string `json:"action"`
	Temp   *int   `json:"temp,omitempty"`
}

type motionRequest struct {
	Action string `json:"action"`
	Params any    `json:"params"`
}

type homeParams struct {
	X bool `json:"x"`
	Y bool `json:"y"`
	Z bool `json:"z"`
}

type moveParams struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Z        *float64 `json:"z,omitempty"`
	Feedrate int      `json:"feedrate"`
}

type sdRequest struct {
	Action   string `json:"action"`
	Filename string `json:"filename,omitempty"`
}

type safetyRequest struct {
	Action string `json:"action"`
}
