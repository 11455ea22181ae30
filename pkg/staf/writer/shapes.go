package writer

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

// CountShapes counts the drawing shapes anchored on a sheet by walking the
// workbook's DrawingML part directly. Legacy notes live in VML, not in
// DrawingML, so inserting notes must leave this count unchanged. A workbook
// or sheet without a drawing part counts as zero shapes.
func CountShapes(xlsxPath, sheetName string) (int, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	drawingPath, err := sheetDrawingPath(&r.Reader, sheetName)
	if err != nil || drawingPath == "" {
		return 0, err
	}

	drawingXML, err := readZipFile(&r.Reader, drawingPath)
	if err != nil || drawingXML == nil {
		return 0, err
	}

	return countDrawingShapes(drawingXML), nil
}

// countDrawingShapes counts the top-level shape objects inside each anchor
// element: plain shapes, connectors, pictures, group shapes and graphic
// frames (charts) each count once, matching how a sheet's shape collection
// is sized.
func countDrawingShapes(data []byte) int {
	count := 0
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	inAnchor := false

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			if ee, ok := token.(xml.EndElement); ok && isAnchorElement(ee.Name.Local) {
				inAnchor = false
			}
			continue
		}
		if isAnchorElement(se.Name.Local) {
			inAnchor = true
			continue
		}
		if !inAnchor {
			continue
		}
		switch se.Name.Local {
		case "sp", "cxnSp", "pic", "grpSp", "graphicFrame":
			count++
			// A group counts once; don't descend into its children.
			if err := decoder.Skip(); err != nil {
				return count
			}
		}
	}

	return count
}

func isAnchorElement(name string) bool {
	switch name {
	case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
		return true
	}
	return false
}

// sheetDrawingPath resolves the DrawingML part path for a sheet by chasing
// workbook.xml -> workbook.xml.rels -> the worksheet's own rels.
func sheetDrawingPath(r *zip.Reader, sheetName string) (string, error) {
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return "", err
	}
	rIDBySheet := parseWorkbookSheets(workbookXML)
	rID, ok := rIDBySheet[sheetName]
	if !ok {
		return "", nil
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return "", err
	}
	sheetPath := relationshipTarget(wbRelsXML, rID, "worksheet")
	if sheetPath == "" {
		return "", nil
	}
	sheetPath = resolvePartPath(sheetPath, "xl")

	relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1)
	relsPath = strings.Replace(relsPath, ".xml", ".xml.rels", 1)
	sheetRelsXML, err := readZipFile(r, relsPath)
	if err != nil || sheetRelsXML == nil {
		return "", err
	}

	drawingPath := relationshipTargetByType(sheetRelsXML, "drawing")
	if drawingPath == "" {
		return "", nil
	}
	return resolvePartPath(drawingPath, "xl/drawings"), nil
}

// parseWorkbookSheets maps sheet names to their relationship IDs.
func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[name] = rID
			}
		}
	}

	return result
}

// relationshipTarget returns the target of the relationship with the given
// ID whose type contains typeHint.
func relationshipTarget(data []byte, wantID, typeHint string) string {
	target := ""
	walkRelationships(data, func(rID, relType, relTarget string) {
		if rID == wantID && strings.Contains(strings.ToLower(relType), typeHint) {
			target = relTarget
		}
	})
	return target
}

// relationshipTargetByType returns the first relationship target whose type
// contains typeHint.
func relationshipTargetByType(data []byte, typeHint string) string {
	target := ""
	walkRelationships(data, func(_, relType, relTarget string) {
		if target == "" && strings.Contains(strings.ToLower(relType), typeHint) {
			target = relTarget
		}
	})
	return target
}

func walkRelationships(data []byte, fn func(rID, relType, target string)) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			fn(rID, relType, target)
		}
	}
}

// resolvePartPath normalizes a relationship target against its base part
// directory.
func resolvePartPath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}
