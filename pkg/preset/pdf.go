// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preset

import (
	"github.com/walteh/patchrc/pkg/patch"
)

// exportBlockStart opens every inline export block in the contract page
const exportBlockStart = `// Get all elements and their computed styles BEFORE cloning`

const pdfExportCall = `// Use the universal PDF export utility
                      await exportToPDF(
                        "contract-details-content",
                        ` + "`contract-${selectedContract.id}`" + `,
                        { scale: 2, orientation: "portrait", format: "a4" }
                      );`

const pngExportCall = `// Use the universal PDF export utility to get PNG
                      const imgData = await exportToPNG(
                        "contract-details-content",
                        ` + "`contract-${selectedContract.id}`" + `,
                        { scale: 2 }
                      );`

// pdfExportRules replace the first PDF block, then the first PNG block. Once
// replaced the start comment is gone, so a second run matches nothing.
func pdfExportRules() []patch.Rule {
	return []patch.Rule{
		{
			Name:    "export-pdf-block",
			Pattern: `(?s)` + exportBlockStart + `.*?pdf\.save\(` + "`" + `contract-\$\{selectedContract\.id\}\.pdf` + "`" + `\);`,
			Replace: pdfExportCall,
			Literal: true,
			Limit:   1,
		},
		{
			Name:    "export-png-block",
			Pattern: `(?s)` + exportBlockStart + `.*?const imgData = canvas\.toDataURL\('image/png'\);`,
			Replace: pngExportCall,
			Literal: true,
			Limit:   1,
		},
	}
}
