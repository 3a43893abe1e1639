package rendering

// The two layout templates render the same candidate record with the same
// \section* boundaries so the fallback extractor and the fidelity scorer
// see comparable structure regardless of layout.

// tabularTemplate arranges each section as a two-column table.
const tabularTemplate = `\documentclass[10pt]{article}
\usepackage[margin=0.75in]{geometry}
\pagestyle{empty}
\begin{document}

\begin{center}
{\LARGE \textbf{ {{escape .Name}} }}\\[4pt]
{{escape .Email}} \quad {{escape .Phone}}
\end{center}

\section*{Experience}
\begin{tabular}{@{}p{0.28\textwidth}p{0.66\textwidth}@{}}
{{range .Experience}}\textbf{ {{escape .Company}} } & {{escape .Role}} \hfill {{escape .StartDate}} -- {{escape .EndDate}} \\
{{range .Bullets}} & {{escape .}} \\
{{end}}{{end}}\end{tabular}

\section*{Education}
\begin{tabular}{@{}p{0.28\textwidth}p{0.66\textwidth}@{}}
{{range .Education}}\textbf{ {{escape .School}} } & {{escape .Degree}}, {{escape .Field}} \hfill {{escape .StartDate}} -- {{escape .EndDate}} \\
{{end}}\end{tabular}

\section*{Skills}
{{joinEscaped .Skills ", "}}

\end{document}
`

// itemizedTemplate arranges each section as headed bullet lists.
const itemizedTemplate = `\documentclass[10pt]{article}
\usepackage[margin=0.75in]{geometry}
\pagestyle{empty}
\begin{document}

\begin{center}
{\LARGE \textbf{ {{escape .Name}} }}\\[4pt]
{{escape .Email}} \quad {{escape .Phone}}
\end{center}

\section*{Experience}
{{range .Experience}}\textbf{ {{escape .Role}} }, {{escape .Company}} \hfill {{escape .StartDate}} -- {{escape .EndDate}}
\begin{itemize}
{{range .Bullets}}  \item {{escape .}}
{{end}}\end{itemize}
{{end}}
\section*{Education}
\begin{itemize}
{{range .Education}}  \item \textbf{ {{escape .Degree}} }, {{escape .Field}}, {{escape .School}} ({{escape .StartDate}} -- {{escape .EndDate}})
{{end}}\end{itemize}

\section*{Skills}
\begin{itemize}
{{range .Skills}}  \item {{escape .}}
{{end}}\end{itemize}

\end{document}
`
