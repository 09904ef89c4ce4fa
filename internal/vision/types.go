package vision

// AnalyzeResult is the Image Analysis 4.0 response envelope. Feature
// sub-results the service did not compute stay nil.
type AnalyzeResult struct {
	ModelVersion  string         `json:"modelVersion"`
	CaptionResult *CaptionResult `json:"captionResult"`
	ReadResult    *ReadResult    `json:"readResult"`
	TagsResult    *TagsResult    `json:"tagsResult"`
	ObjectsResult *ObjectsResult `json:"objectsResult"`
	PeopleResult  *PeopleResult  `json:"peopleResult"`
}

// CaptionResult is the generated image description.
type CaptionResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// ReadResult holds recognized text grouped into blocks of lines.
type ReadResult struct {
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Lines []Line `json:"lines"`
}

type Line struct {
	Text  string `json:"text"`
	Words []Word `json:"words,omitempty"`
}

type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TagsResult lists content tags in service order.
type TagsResult struct {
	Values []Tag `json:"values"`
}

type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ObjectsResult lists detected objects, each carrying zero or more tags.
type ObjectsResult struct {
	Values []DetectedObject `json:"values"`
}

type DetectedObject struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Tags        []Tag       `json:"tags"`
}

// PeopleResult lists detected people; the validator only keeps the count.
type PeopleResult struct {
	Values []DetectedPerson `json:"values"`
}

type DetectedPerson struct {
	BoundingBox BoundingBox `json:"boundingBox"`
	Confidence  float64     `json:"confidence"`
}

type BoundingBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}
